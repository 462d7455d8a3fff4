package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentaltrack/server/internal/models"
)

// settings loads the persisted settings, falling back to the configured
// defaults when the store cannot be read.
func (h *Handler) settings(c *gin.Context) models.Settings {
	s, err := h.db.LoadSettings(c.Request.Context(), h.defaults)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load settings, using defaults")
		return h.defaults
	}
	return s
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings(c))
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var s models.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		h.invalid(c, err)
		return
	}
	s.CurrencyCode = strings.ToUpper(strings.TrimSpace(s.CurrencyCode))
	if s.CurrencyCode == "" {
		s.CurrencyCode = h.defaults.CurrencyCode
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = h.defaults.CurrencySymbol
	}

	if err := h.db.SaveSettings(c.Request.Context(), s); err != nil {
		h.fail(c, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, s)
}
