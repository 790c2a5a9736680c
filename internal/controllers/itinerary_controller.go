package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travel_planner/internal/models"
	"travel_planner/internal/services"
	"travel_planner/internal/validation"
)

type ItineraryController struct {
	svc *services.ItineraryService
}

func NewItineraryController(svc *services.ItineraryService) *ItineraryController {
	return &ItineraryController{svc: svc}
}

type itineraryRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft published completed cancelled"`
	IsPublic    bool     `json:"is_public"`
	Cities      []uint   `json:"cities"`
}

func (r itineraryRequest) input() (services.ItineraryInput, error) {
	var errs validation.Errors
	in := services.ItineraryInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   parseDate("start_date", r.StartDate, &errs),
		EndDate:     parseDate("end_date", r.EndDate, &errs),
		Budget:      r.Budget,
		Status:      models.Status(r.Status),
		IsPublic:    r.IsPublic,
		CityIDs:     r.Cities,
	}
	return in, errs.Err()
}

type stopRequest struct {
	CityID        uint   `json:"city_id" binding:"required"`
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
	Notes         string `json:"notes"`
}

type scheduleRequest struct {
	ActivityID uint   `json:"activity_id" binding:"required"`
	DayNumber  int    `json:"day_number" binding:"required"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes"`
	Order      int    `json:"order"`
}

type stopResponse struct {
	ID            uint   `json:"id"`
	CityID        uint   `json:"city_id"`
	CityName      string `json:"city_name"`
	ArrivalDate   string `json:"arrival_date,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	Notes         string `json:"notes"`
}

type scheduleResponse struct {
	ID           uint   `json:"id"`
	ActivityID   uint   `json:"activity_id"`
	ActivityName string `json:"activity_name"`
	DayNumber    int    `json:"day_number"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Notes        string `json:"notes"`
	Order        int    `json:"order"`
}

type itineraryResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   string             `json:"start_date,omitempty"`
	EndDate     string             `json:"end_date,omitempty"`
	TotalDays   int                `json:"total_days"`
	Budget      *float64           `json:"budget"`
	Status      models.Status      `json:"status"`
	IsPublic    bool               `json:"is_public"`
	CreatedAt   time.Time          `json:"created_at"`
	Cities      []stopResponse     `json:"cities"`
	Activities  []scheduleResponse `json:"activities"`
}

func renderStop(s models.ItineraryCity) stopResponse {
	return stopResponse{
		ID:            s.ID,
		CityID:        s.CityID,
		CityName:      s.City.Name,
		ArrivalDate:   models.FormatDate(s.ArrivalDate),
		DepartureDate: models.FormatDate(s.DepartureDate),
		Notes:         s.Notes,
	}
}

func renderSchedule(a models.ItineraryActivity) scheduleResponse {
	return scheduleResponse{
		ID:           a.ID,
		ActivityID:   a.ActivityID,
		ActivityName: a.Activity.Name,
		DayNumber:    a.DayNumber,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Notes:        a.Notes,
		Order:        a.Order,
	}
}

func renderItinerary(it models.Itinerary) itineraryResponse {
	resp := itineraryResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		StartDate:   models.FormatDate(it.StartDate),
		EndDate:     models.FormatDate(it.EndDate),
		TotalDays:   it.TotalDays(),
		Budget:      it.Budget,
		Status:      it.Status,
		IsPublic:    it.IsPublic,
		CreatedAt:   it.CreatedAt,
		Cities:      make([]stopResponse, 0, len(it.Cities)),
		Activities:  make([]scheduleResponse, 0, len(it.Activities)),
	}
	for _, s := range it.Cities {
		resp.Cities = append(resp.Cities, renderStop(s))
	}
	for _, a := range it.Activities {
		resp.Activities = append(resp.Activities, renderSchedule(a))
	}
	return resp
}

func (ctl *ItineraryController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := ctl.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]itineraryResponse, 0, len(list))
	for _, it := range list {
		out = append(out, renderItinerary(it))
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *ItineraryController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	it, err := ctl.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderItinerary(*it))
}

func (ctl *ItineraryController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	it, err := ctl.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, renderItinerary(*it))
}

func (ctl *ItineraryController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	it, err := ctl.svc.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderItinerary(*it))
}

func (ctl *ItineraryController) Delete(c *gin.Context) {
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

// AddCity handles POST /itineraries/:id/cities
func (ctl *ItineraryController) AddCity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req stopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	var errs validation.Errors
	in := services.StopInput{
		CityID:        req.CityID,
		ArrivalDate:   parseDate("arrival_date", req.ArrivalDate, &errs),
		DepartureDate: parseDate("departure_date", req.DepartureDate, &errs),
		Notes:         req.Notes,
	}
	if len(errs) > 0 {
		respondError(c, errs)
		return
	}
	stop, err := ctl.svc.AddCity(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, renderStop(*stop))
}

func (ctl *ItineraryController) RemoveCity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	stopID, ok := paramID(c, "stopID")
	if !ok {
		return
	}
	if err := ctl.svc.RemoveCity(c.Request.Context(), userID, id, stopID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddActivity handles POST /itineraries/:id/activities
func (ctl *ItineraryController) AddActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	entry, err := ctl.svc.AddActivity(c.Request.Context(), userID, id, services.ScheduleInput{
		ActivityID: req.ActivityID,
		DayNumber:  req.DayNumber,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Notes:      req.Notes,
		Order:      req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, renderSchedule(*entry))
}

func (ctl *ItineraryController) RemoveActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entryID, ok := paramID(c, "entryID")
	if !ok {
		return
	}
	if err := ctl.svc.RemoveActivity(c.Request.Context(), userID, id, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
