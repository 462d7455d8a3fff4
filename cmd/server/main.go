package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/api"
	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
	"rentaltrack/server/internal/processor"
	"rentaltrack/server/internal/queue"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.Logging.Level).Warn("Unknown log level, using info")
	}
	return logger
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := newLogger(cfg)

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// View-model state shared by every request
	cal := calendar.NewAggregator(db, logger)
	cal.Load(ctx)
	dash := dashboard.NewEngine(dashboard.WithEstimator(dashboard.EstimatorFromConfig(cfg)))
	session := api.NewSession(cal, dash)

	// Cover photo pipeline
	photos := queue.NewPhotoQueue(cfg.Photos.QueueSize, logger)
	processor.NewPhotoProcessor(db.GetDB(), photos, cfg, logger).Start()

	defaults := models.Settings{CurrencyCode: cfg.Currency.Code, CurrencySymbol: cfg.Currency.Symbol}
	handler := api.NewHandler(db, session, photos, defaults, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))
	api.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Photos.ProcessorCount; i++ {
		g.Go(func() error { return photos.Run(ctx) })
	}
	g.Go(func() error {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		photos.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Server stopped with error")
		return
	}
	logger.Info("Server stopped")
}
