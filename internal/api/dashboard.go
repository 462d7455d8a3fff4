package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentaltrack/server/internal/calendar"
	"rentaltrack/server/internal/dashboard"
	"rentaltrack/server/internal/models"
)

type DashboardView struct {
	Selection dashboard.Selection `json:"selection"`
	Stats     dashboard.Stats     `json:"stats"`
	Display   StatsDisplay        `json:"display"`
	Counts    dashboard.Counts    `json:"counts"`
	Cards     []dashboard.Card    `json:"cards"`
}

// StatsDisplay carries the money totals formatted in the user's currency.
type StatsDisplay struct {
	TotalRevenue  string `json:"total_revenue"`
	TotalExpenses string `json:"total_expenses"`
	NetIncome     string `json:"net_income"`
}

// DashboardFilterRequest changes the filters; omitted fields are left alone.
// Setting the rental type always resets both status filters first.
type DashboardFilterRequest struct {
	RentalType      *string `json:"rental_type"`
	ShortTermStatus *string `json:"short_term_status"`
	LongTermStatus  *string `json:"long_term_status"`
}

func dashboardView(settings models.Settings, cal *calendar.Aggregator, dash *dashboard.Engine) DashboardView {
	all := cal.Properties()
	stats := dash.Summary(all)

	return DashboardView{
		Selection: dash.Selection(),
		Stats:     stats,
		Display: StatsDisplay{
			TotalRevenue:  settings.FormatAmount(stats.TotalRevenue),
			TotalExpenses: settings.FormatAmount(stats.TotalExpenses),
			NetIncome:     settings.FormatAmount(stats.NetIncome),
		},
		Counts: dash.Counts(all),
		Cards:  dash.Cards(dash.FilteredProperties(all)),
	}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	settings := h.settings(c)
	var view DashboardView
	h.session.Do(func(cal *calendar.Aggregator, dash *dashboard.Engine) {
		view = dashboardView(settings, cal, dash)
	})
	c.JSON(http.StatusOK, view)
}

func (h *Handler) SetDashboardFilter(c *gin.Context) {
	var req DashboardFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	var (
		rental    *dashboard.RentalFilter
		shortTerm *dashboard.ShortTermStatus
		longTerm  *dashboard.LongTermStatus
	)
	if req.RentalType != nil {
		f, err := dashboard.ParseRentalFilter(*req.RentalType)
		if err != nil {
			h.invalid(c, err)
			return
		}
		rental = &f
	}
	if req.ShortTermStatus != nil {
		s, err := dashboard.ParseShortTermStatus(*req.ShortTermStatus)
		if err != nil {
			h.invalid(c, err)
			return
		}
		shortTerm = &s
	}
	if req.LongTermStatus != nil {
		s, err := dashboard.ParseLongTermStatus(*req.LongTermStatus)
		if err != nil {
			h.invalid(c, err)
			return
		}
		longTerm = &s
	}

	settings := h.settings(c)
	var view DashboardView
	h.session.Do(func(cal *calendar.Aggregator, dash *dashboard.Engine) {
		if rental != nil {
			dash.SelectRentalType(*rental)
		}
		if shortTerm != nil {
			dash.SelectShortTermStatus(*shortTerm)
		}
		if longTerm != nil {
			dash.SelectLongTermStatus(*longTerm)
		}
		view = dashboardView(settings, cal, dash)
	})
	c.JSON(http.StatusOK, view)
}
