package routes

import (
	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/middleware"
)

func ReportRoutes(r *gin.Engine, ctl *controllers.ReportController) {
	r.GET("/transportation", ctl.Transportation)
	r.GET("/dashboard", middleware.RequireAuth(), ctl.Dashboard)
}
