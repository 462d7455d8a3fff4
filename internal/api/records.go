package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
	"rentaltrack/server/internal/models"
)

type TransactionRequest struct {
	PropertyID uuid.UUID       `json:"property_id"`
	IsIncome   bool            `json:"is_income"`
	Amount     decimal.Decimal `json:"amount"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Platform   string          `json:"platform"`
	Category   string          `json:"category"`
	Detail     string          `json:"detail"`
}

type BlockedDateRequest struct {
	PropertyID uuid.UUID `json:"property_id"`
	StartDate  string    `json:"start_date" binding:"required"`
	EndDate    string    `json:"end_date"`
	Reason     string    `json:"reason"`
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		h.invalid(c, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.invalid(c, err)
		return
	}

	t := models.Transaction{
		PropertyID: req.PropertyID,
		IsIncome:   req.IsIncome,
		Amount:     req.Amount,
		StartDate:  start,
		EndDate:    end,
		Category:   req.Category,
		Detail:     req.Detail,
	}
	if req.IsIncome {
		t.Platform = models.ParsePlatform(req.Platform)
	}

	if err := h.db.CreateTransaction(c.Request.Context(), &t); err != nil {
		h.fail(c, err, "Failed to create transaction")
		return
	}

	h.session.Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete transaction")
		return
	}

	h.session.Refresh(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateBlockedDate(c *gin.Context) {
	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		h.invalid(c, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.invalid(c, err)
		return
	}

	b := models.BlockedDate{PropertyID: req.PropertyID, StartDate: *start, Reason: req.Reason}
	if end != nil {
		b.EndDate = *end
	}

	if err := h.db.CreateBlockedDate(c.Request.Context(), &b); err != nil {
		h.fail(c, err, "Failed to create blocked date")
		return
	}

	h.session.Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, b)
}

// DeleteBlockedDate removes a blocked date through the calendar so its day
// map is refreshed in the same step.
func (h *Handler) DeleteBlockedDate(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	record, err := h.db.GetBlockedDate(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to get blocked date")
		return
	}

	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		err = cal.DeleteBlockedDate(ctx, *record)
	})
	if err != nil {
		h.fail(c, err, "Failed to delete blocked date")
		return
	}
	c.Status(http.StatusNoContent)
}
