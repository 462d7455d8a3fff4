package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentaltrack/server/config"
	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
	"rentaltrack/server/internal/models"
)

type CalendarView struct {
	Month       string                 `json:"month"`
	PropertyID  *uuid.UUID             `json:"property_id"`
	SelectedDay int                    `json:"selected_day,omitempty"`
	Today       time.Time              `json:"today"`
	Days        []calendar.DayCell     `json:"days"`
	Palette     []config.PlatformStyle `json:"palette"`
}

type SelectedDayView struct {
	Day         int                  `json:"day"`
	Date        *time.Time           `json:"date,omitempty"`
	Blocked     bool                 `json:"blocked"`
	BlockedDate *models.BlockedDate  `json:"blocked_date,omitempty"`
	Bookings    []models.Transaction `json:"bookings"`
}

// MonthRequest either moves the calendar by Delta months or jumps to Month.
type MonthRequest struct {
	Delta int    `json:"delta"`
	Month string `json:"month"`
}

// FilterRequest scopes the calendar to one property; an empty id shows all.
type FilterRequest struct {
	PropertyID string `json:"property_id"`
}

func calendarView(cal *calendar.Aggregator) CalendarView {
	day, _ := cal.SelectedDay()
	return CalendarView{
		Month:       cal.Month().String(),
		PropertyID:  cal.PropertyFilter(),
		SelectedDay: day,
		Today:       cal.Today(),
		Days:        cal.Days(),
		Palette:     config.PlatformPalette,
	}
}

func (h *Handler) GetCalendar(c *gin.Context) {
	var view CalendarView
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		view = calendarView(cal)
	})
	c.JSON(http.StatusOK, view)
}

func (h *Handler) SetMonth(c *gin.Context) {
	var req MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	var target *calendar.Month
	if req.Month != "" {
		m, err := calendar.ParseMonth(req.Month)
		if err != nil {
			h.invalid(c, err)
			return
		}
		target = &m
	}

	var view CalendarView
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		if target != nil {
			cal.ShowMonth(*target)
		} else {
			cal.SetMonth(req.Delta)
		}
		view = calendarView(cal)
	})
	c.JSON(http.StatusOK, view)
}

func (h *Handler) SetCalendarFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		id, err := uuid.Parse(req.PropertyID)
		if err != nil {
			h.invalid(c, err)
			return
		}
		propertyID = &id
	}

	var view CalendarView
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		cal.SetPropertyFilter(c.Request.Context(), propertyID)
		view = calendarView(cal)
	})
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ToggleDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		h.invalid(c, err)
		return
	}

	var view SelectedDayView
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		cal.ToggleDay(day)
		view = selectedDayView(cal)
	})
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetSelectedDay(c *gin.Context) {
	var view SelectedDayView
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		view = selectedDayView(cal)
	})
	c.JSON(http.StatusOK, view)
}

func selectedDayView(cal *calendar.Aggregator) SelectedDayView {
	view := SelectedDayView{Bookings: []models.Transaction{}}
	day, ok := cal.SelectedDay()
	if !ok {
		return view
	}

	date := cal.Month().Date(day)
	view.Day = day
	view.Date = &date
	view.Blocked = cal.IsBlocked(day)
	if record, ok := cal.BlockedRecordFor(day); ok {
		view.BlockedDate = &record
	}
	if bookings := cal.BookingsForSelectedDay(); len(bookings) > 0 {
		view.Bookings = bookings
	}
	return view
}

func (h *Handler) GetUpcoming(c *gin.Context) {
	bookings := []models.Transaction{}
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		bookings = append(bookings, cal.UpcomingBookings()...)
	})
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetConflicts(c *gin.Context) {
	conflicts := []calendar.Conflict{}
	h.session.Do(func(cal *calendar.Aggregator, _ *dashboard.Engine) {
		conflicts = append(conflicts, cal.Conflicts()...)
	})
	c.JSON(http.StatusOK, conflicts)
}
