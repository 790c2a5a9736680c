package routes

import (
	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/middleware"
)

func CatalogRoutes(r *gin.Engine, ctl *controllers.CatalogController) {
	cities := r.Group("/cities")
	{
		cities.GET("", ctl.Cities)
		cities.GET("/autocomplete", ctl.Autocomplete)
		cities.GET("/geojson", ctl.CitiesGeoJSON)
		cities.GET("/:id", ctl.City)
		cities.GET("/:id/transport", ctl.Departures)
	}

	admin := r.Group("/catalog")
	admin.Use(middleware.RequireAuth())
	{
		admin.POST("/countries", ctl.CreateCountry)
		admin.POST("/cities", ctl.CreateCity)
		admin.POST("/activities", ctl.CreateActivity)
		admin.POST("/transportation", ctl.CreateTransportation)
	}
}
