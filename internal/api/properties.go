package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rentaltrack/server/internal/database"
	"rentaltrack/server/internal/models"
	"rentaltrack/server/internal/queue"
)

// maxPhotoSize bounds an uploaded cover photo before processing.
const maxPhotoSize = 10 << 20

type PropertyRequest struct {
	Name        string               `json:"name" binding:"required"`
	Street      string               `json:"street"`
	City        string               `json:"city"`
	Region      string               `json:"region"`
	Type        models.RentalType    `json:"type" binding:"required"`
	Source      models.BookingSource `json:"source"`
	Rate        decimal.Decimal      `json:"rate"`
	Bedrooms    int                  `json:"bedrooms"`
	Bathrooms   int                  `json:"bathrooms"`
	MaxGuests   int                  `json:"max_guests"`
	Description string               `json:"description"`
	CoverIndex  int                  `json:"cover_index"`
}

func (r PropertyRequest) apply(p *models.Property) {
	p.Name = r.Name
	p.Street = r.Street
	p.City = r.City
	p.Region = r.Region
	p.Type = r.Type
	p.Source = r.Source
	p.Rate = r.Rate
	p.Bedrooms = r.Bedrooms
	p.Bathrooms = r.Bathrooms
	p.MaxGuests = r.MaxGuests
	if p.MaxGuests == 0 {
		p.MaxGuests = 1
	}
	p.Description = r.Description
	p.CoverIndex = r.CoverIndex
}

func (h *Handler) ListProperties(c *gin.Context) {
	q := database.PropertyQuery{Sort: database.SortByName}
	if t := c.Query("type"); t != "" {
		rt := models.RentalType(t)
		if !rt.Valid() {
			h.fail(c, models.ErrInvalidType, "Invalid rental type")
			return
		}
		q.Type = &rt
	}

	properties, err := h.db.FetchProperties(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "Failed to get properties")
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to get property")
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	var property models.Property
	req.apply(&property)
	if err := h.db.CreateProperty(c.Request.Context(), &property); err != nil {
		h.fail(c, err, "Failed to create property")
		return
	}

	h.session.Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	property := models.Property{ID: id}
	req.apply(&property)
	if err := h.db.UpdateProperty(ctx, &property); err != nil {
		h.fail(c, err, "Failed to update property")
		return
	}

	updated, err := h.db.GetProperty(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to get property")
		return
	}
	h.session.Refresh(ctx)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteProperty(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete property")
		return
	}

	h.session.Refresh(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// UploadPhoto queues the "photo" form file for processing and answers 202.
func (h *Handler) UploadPhoto(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if _, err := h.db.GetProperty(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to get property")
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		h.invalid(c, err)
		return
	}
	if header.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo is too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.fail(c, err, "Failed to read photo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, err, "Failed to read photo")
		return
	}

	switch err := h.photos.Push(queue.PhotoJob{PropertyID: id, Data: data}); {
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed):
		h.logger.WithError(err).WithField("property_id", id).Warn("Cover photo rejected")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo processing is busy, try again later"})
		return
	case err != nil:
		h.fail(c, err, "Failed to queue photo")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "Photo queued for processing"})
}

func (h *Handler) GetPhoto(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	data, err := h.db.GetPropertyPhoto(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to get photo")
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}
