package routes

import (
	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/middleware"
)

func DestinationRoutes(r *gin.Engine, ctl *controllers.DestinationController) {
	public := r.Group("/destinations")
	{
		public.GET("", ctl.List)
		public.GET("/geojson", ctl.GeoJSON)
		public.GET("/slug/:slug", ctl.GetBySlug)
		public.GET("/:id", ctl.Get)
	}

	editor := r.Group("/destinations")
	editor.Use(middleware.RequireAuth())
	{
		editor.POST("", ctl.Create)
		editor.PUT("/:id", ctl.Update)
		editor.DELETE("/:id", ctl.Delete)
	}
}
