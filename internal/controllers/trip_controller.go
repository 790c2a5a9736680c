package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travel_planner/internal/models"
	"travel_planner/internal/services"
	"travel_planner/internal/validation"
)

type TripController struct {
	svc          *services.TripService
	destinations *DestinationController
}

func NewTripController(svc *services.TripService, destinations *DestinationController) *TripController {
	return &TripController{svc: svc, destinations: destinations}
}

type tripRequest struct {
	Name        string   `json:"name" binding:"max=200"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft published completed cancelled"`
}

func (r tripRequest) input() (services.TripInput, error) {
	var errs validation.Errors
	in := services.TripInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   parseDate("start_date", r.StartDate, &errs),
		EndDate:     parseDate("end_date", r.EndDate, &errs),
		Budget:      r.Budget,
		Status:      models.Status(r.Status),
	}
	return in, errs.Err()
}

type tripResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	StartDate    string                `json:"start_date,omitempty"`
	EndDate      string                `json:"end_date,omitempty"`
	DurationDays *int                  `json:"duration_days"`
	Budget       *float64              `json:"budget"`
	Status       models.Status         `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	Destinations []destinationResponse `json:"destinations,omitempty"`
}

func (ctl *TripController) render(t models.Trip) tripResponse {
	resp := tripResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		StartDate:    models.FormatDate(t.StartDate),
		EndDate:      models.FormatDate(t.EndDate),
		DurationDays: t.DurationDays(),
		Budget:       t.Budget,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
	}
	for _, d := range t.Destinations {
		resp.Destinations = append(resp.Destinations, ctl.destinations.render(d))
	}
	return resp
}

func (ctl *TripController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	trips, err := ctl.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, ctl.render(t))
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *TripController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := ctl.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.render(*t))
}

func (ctl *TripController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	t, err := ctl.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctl.render(*t))
}

func (ctl *TripController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	t, err := ctl.svc.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.render(*t))
}

func (ctl *TripController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.svc.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
