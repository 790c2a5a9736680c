package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travel_planner/internal/geo"
	"travel_planner/internal/models"
	"travel_planner/internal/services"
)

type CatalogController struct {
	svc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{svc: svc}
}

type countryInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Code     string `json:"code" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Language string `json:"language" binding:"max=50"`
}

type cityInput struct {
	Name        string   `json:"name" binding:"required,max=100"`
	CountryID   uint     `json:"country_id" binding:"required"`
	Description string   `json:"description"`
	IsPopular   bool     `json:"is_popular"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type activityInput struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required"`
	CityID        uint     `json:"city_id" binding:"required"`
	DestinationID uint     `json:"destination_id" binding:"required"`
	Address       string   `json:"address" binding:"max=300"`
	Price         *float64 `json:"price"`
	DurationHours *float64 `json:"duration_hours"`
	Rating        *float64 `json:"rating"`
}

type transportInput struct {
	OriginID      uint    `json:"origin_id" binding:"required"`
	DestinationID uint    `json:"destination_id" binding:"required"`
	TransportType string  `json:"transport_type" binding:"required"`
	Company       string  `json:"company" binding:"max=100"`
	DurationHours float64 `json:"duration_hours"`
	PriceMin      float64 `json:"price_min"`
	Notes         string  `json:"notes"`
	BookingURL    string  `json:"booking_url" binding:"omitempty,url"`
}

func (ctl *CatalogController) Cities(c *gin.Context) {
	cities, err := ctl.svc.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// Autocomplete handles GET /cities/autocomplete?q=
func (ctl *CatalogController) Autocomplete(c *gin.Context) {
	cities, err := ctl.svc.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	type suggestion struct {
		ID      uint   `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	}
	out := make([]suggestion, 0, len(cities))
	for _, city := range cities {
		s := suggestion{ID: city.ID, Name: city.Name}
		if city.Country != nil {
			s.Country = city.Country.Name
		}
		out = append(out, s)
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *CatalogController) CitiesGeoJSON(c *gin.Context) {
	cities, err := ctl.svc.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, geo.Cities(cities))
}

func (ctl *CatalogController) City(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	city, err := ctl.svc.City(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	activities, err := ctl.svc.Activities(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "activities": activities})
}

// Departures handles GET /cities/:id/transport
func (ctl *CatalogController) Departures(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	options, err := ctl.svc.Departures(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (ctl *CatalogController) CreateCountry(c *gin.Context) {
	var in countryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	country := &models.Country{Name: in.Name, Code: in.Code, Currency: in.Currency, Language: in.Language}
	if err := ctl.svc.CreateCountry(c.Request.Context(), country); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, country)
}

func (ctl *CatalogController) CreateCity(c *gin.Context) {
	var in cityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	city := &models.City{
		Name:        in.Name,
		CountryID:   in.CountryID,
		Description: in.Description,
		IsPopular:   in.IsPopular,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
	if err := ctl.svc.CreateCity(c.Request.Context(), city); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

func (ctl *CatalogController) CreateActivity(c *gin.Context) {
	var in activityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	a := &models.Activity{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		CityID:        in.CityID,
		DestinationID: in.DestinationID,
		Address:       in.Address,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		Rating:        in.Rating,
	}
	if err := ctl.svc.CreateActivity(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ctl *CatalogController) CreateTransportation(c *gin.Context) {
	var in transportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	t := &models.Transportation{
		OriginID:      in.OriginID,
		DestinationID: in.DestinationID,
		TransportType: in.TransportType,
		Company:       in.Company,
		DurationHours: in.DurationHours,
		PriceMin:      in.PriceMin,
		Notes:         in.Notes,
		BookingURL:    in.BookingURL,
	}
	if err := ctl.svc.CreateTransportation(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
