package services

import (
	"context"
	"strings"

	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/validation"
)

const autocompleteLimit = 10

var (
	activityCategories = map[string]bool{
		models.CategoryMuseum: true, models.CategoryRestaurant: true, models.CategoryAttraction: true,
		models.CategoryHotel: true, models.CategoryTransport: true, models.CategoryShopping: true,
		models.CategoryEntertainment: true,
	}
	transportTypes = map[string]bool{
		models.TransportPlane: true, models.TransportTrain: true, models.TransportBus: true,
		models.TransportFerry: true, models.TransportOther: true,
	}
)

// CatalogService manages countries, cities, activities and transport options.
type CatalogService struct {
	catalog      repositories.CatalogRepository
	destinations repositories.DestinationRepository
}

func NewCatalogService(catalog repositories.CatalogRepository, destinations repositories.DestinationRepository) *CatalogService {
	return &CatalogService{catalog: catalog, destinations: destinations}
}

func (s *CatalogService) Autocomplete(ctx context.Context, q string) ([]models.City, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.City{}, nil
	}
	return s.catalog.SearchCities(ctx, q, autocompleteLimit)
}

func (s *CatalogService) Cities(ctx context.Context) ([]models.City, error) {
	return s.catalog.ListCities(ctx)
}

func (s *CatalogService) City(ctx context.Context, id uint) (*models.City, error) {
	return s.catalog.FindCity(ctx, id)
}

func (s *CatalogService) Departures(ctx context.Context, cityID uint) ([]models.Transportation, error) {
	if _, err := s.catalog.FindCity(ctx, cityID); err != nil {
		return nil, err
	}
	return s.catalog.ListDepartures(ctx, cityID)
}

func (s *CatalogService) Transportation(ctx context.Context) ([]models.Transportation, error) {
	return s.catalog.ListTransportation(ctx)
}

func (s *CatalogService) Activities(ctx context.Context, cityID uint) ([]models.Activity, error) {
	return s.catalog.ListActivities(ctx, cityID)
}

func (s *CatalogService) CreateCountry(ctx context.Context, c *models.Country) error {
	var errs validation.Errors
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || len(c.Name) > 100 {
		errs.Add("name", "must be between 1 and 100 characters")
	}
	if len(c.Code) != 2 {
		errs.Add("code", "must be a 2 letter code")
	}
	if len(c.Currency) != 3 {
		errs.Add("currency", "must be a 3 letter code")
	}
	if len(errs) > 0 {
		return errs
	}
	c.Code = strings.ToUpper(c.Code)
	c.Currency = strings.ToUpper(c.Currency)
	return s.catalog.CreateCountry(ctx, c)
}

func (s *CatalogService) CreateCity(ctx context.Context, c *models.City) error {
	var errs validation.Errors
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || len(c.Name) > 100 {
		errs.Add("name", "must be between 1 and 100 characters")
	}
	errs.Merge(validation.CheckCoordinates(c.Longitude, c.Latitude))
	if len(errs) > 0 {
		return errs
	}
	return s.catalog.CreateCity(ctx, c)
}

func (s *CatalogService) CreateActivity(ctx context.Context, a *models.Activity) error {
	var errs validation.Errors
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" || len(a.Name) > 200 {
		errs.Add("name", "must be between 1 and 200 characters")
	}
	if !activityCategories[a.Category] {
		errs.Add("category", "select a valid category")
	}
	if _, err := s.catalog.FindCity(ctx, a.CityID); err != nil {
		errs.Add("city_id", "select a valid city")
	}
	if _, err := s.destinations.FindByID(ctx, a.DestinationID); err != nil {
		errs.Add("destination_id", "select a valid destination")
	}
	if a.Rating != nil && (*a.Rating < 0 || *a.Rating > 5) {
		errs.Add("rating", "must be between 0 and 5")
	}
	if a.Price != nil && *a.Price < 0 {
		errs.Add("price", "must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	a.IsActive = true
	return s.catalog.CreateActivity(ctx, a)
}

func (s *CatalogService) CreateTransportation(ctx context.Context, t *models.Transportation) error {
	var errs validation.Errors
	t.TransportType = strings.ToUpper(strings.TrimSpace(t.TransportType))
	if !transportTypes[t.TransportType] {
		errs.Add("transport_type", "select a valid transport type")
	}
	if _, err := s.catalog.FindCity(ctx, t.OriginID); err != nil {
		errs.Add("origin_id", "select a valid city")
	}
	if _, err := s.catalog.FindCity(ctx, t.DestinationID); err != nil {
		errs.Add("destination_id", "select a valid city")
	}
	if t.DurationHours < 0 {
		errs.Add("duration_hours", "must not be negative")
	}
	if t.PriceMin < 0 {
		errs.Add("price_min", "must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return s.catalog.CreateTransportation(ctx, t)
}
