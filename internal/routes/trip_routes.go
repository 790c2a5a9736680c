package routes

import (
	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/middleware"
)

func TripRoutes(r *gin.Engine, ctl *controllers.TripController) {
	trips := r.Group("/trips")
	trips.Use(middleware.RequireAuth())
	{
		trips.GET("", ctl.List)
		trips.POST("", ctl.Create)
		trips.GET("/:id", ctl.Get)
		trips.PUT("/:id", ctl.Update)
		trips.DELETE("/:id", ctl.Delete)
	}
}
