package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
	"rentaltrack/server/internal/queue"
)

const dateLayout = "2006-01-02"

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	session  *Session
	photos   *queue.PhotoQueue
	defaults models.Settings
}

func NewHandler(db *database.Database, session *Session, photos *queue.PhotoQueue, defaults models.Settings, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		session:  session,
		photos:   photos,
		defaults: defaults,
	}
}

var badRequest = []error{
	models.ErrEmptyName,
	models.ErrInvalidRate,
	models.ErrInvalidRooms,
	models.ErrInvalidType,
	models.ErrInvalidRange,
	models.ErrMissingOwner,
	models.ErrMissingStart,
	models.ErrInvalidAmount,
}

// fail logs err and writes the matching status with a short message.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case isBadRequest(err):
		status = http.StatusBadRequest
		message = err.Error()
	}

	entry := h.logger.WithError(err).WithField("path", c.FullPath())
	if status == http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
	c.JSON(status, gin.H{"error": message})
}

func isBadRequest(err error) bool {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *Handler) invalid(c *gin.Context, err error) {
	h.logger.WithError(err).Warn("Invalid request")
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

func (h *Handler) idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.invalid(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads a YYYY-MM-DD value; an empty string is no date.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
