package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/properties", handler.ListProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/:id", handler.GetProperty)
		api.PUT("/properties/:id", handler.UpdateProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)
		api.GET("/properties/:id/photo", handler.GetPhoto)
		api.POST("/properties/:id/photo", handler.UploadPhoto)

		api.POST("/transactions", handler.CreateTransaction)
		api.DELETE("/transactions/:id", handler.DeleteTransaction)

		api.POST("/blocked-dates", handler.CreateBlockedDate)
		api.DELETE("/blocked-dates/:id", handler.DeleteBlockedDate)

		api.GET("/calendar", handler.GetCalendar)
		api.POST("/calendar/month", handler.SetMonth)
		api.POST("/calendar/filter", handler.SetCalendarFilter)
		api.POST("/calendar/days/:day/toggle", handler.ToggleDay)
		api.GET("/calendar/selected", handler.GetSelectedDay)
		api.GET("/calendar/upcoming", handler.GetUpcoming)
		api.GET("/calendar/conflicts", handler.GetConflicts)

		api.GET("/dashboard", handler.GetDashboard)
		api.POST("/dashboard/filter", handler.SetDashboardFilter)

		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)
	}
}
