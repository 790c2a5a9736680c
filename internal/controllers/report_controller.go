package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel_planner/internal/services"
)

type ReportController struct {
	svc   *services.ReportService
	trips *TripController
}

func NewReportController(svc *services.ReportService, trips *TripController) *ReportController {
	return &ReportController{svc: svc, trips: trips}
}

// Dashboard handles GET /dashboard for the signed-in user.
func (ctl *ReportController) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := ctl.svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	trips := make([]tripResponse, 0, len(d.Trips))
	for _, t := range d.Trips {
		trips = append(trips, ctl.trips.render(t))
	}
	c.JSON(http.StatusOK, gin.H{
		"trips":            trips,
		"total_trips":      d.TotalTrips,
		"average_duration": d.AverageDuration,
		"average_budget":   d.AverageBudget,
		"status_counts":    d.StatusCounts,
		"duration_chart":   d.DurationChart,
	})
}

func (ctl *ReportController) Transportation(c *gin.Context) {
	r, err := ctl.svc.Transportation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
