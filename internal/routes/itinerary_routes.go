package routes

import (
	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/middleware"
)

func ItineraryRoutes(r *gin.Engine, ctl *controllers.ItineraryController) {
	it := r.Group("/itineraries")
	it.Use(middleware.RequireAuth())
	{
		it.GET("", ctl.List)
		it.POST("", ctl.Create)
		it.GET("/:id", ctl.Get)
		it.PUT("/:id", ctl.Update)
		it.DELETE("/:id", ctl.Delete)

		it.POST("/:id/cities", ctl.AddCity)
		it.DELETE("/:id/cities/:stopID", ctl.RemoveCity)
		it.POST("/:id/activities", ctl.AddActivity)
		it.DELETE("/:id/activities/:entryID", ctl.RemoveActivity)
	}
}
