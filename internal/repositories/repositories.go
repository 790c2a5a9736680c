// Package repositories hides the ORM behind small per-aggregate interfaces.
// The gorm implementations back the server; the in-memory ones back tests.
package repositories

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"travel_planner/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrDuplicateActivity = errors.New("activity already scheduled on that day")
	ErrDuplicateUser     = errors.New("username or email already in use")
)

// DestinationQuery drives the paginated destination list.
type DestinationQuery struct {
	Search  string
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// DestinationOrderColumns whitelists the sortable columns.
var DestinationOrderColumns = map[string]bool{
	"name": true, "city": true, "country": true, "arrival_date": true, "created_at": true,
}

type DestinationRepository interface {
	Create(ctx context.Context, d *models.Destination) error
	Update(ctx context.Context, d *models.Destination) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*models.Destination, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, q DestinationQuery) ([]models.Destination, int64, error)
	ListByTrip(ctx context.Context, tripID uint) ([]models.Destination, error)
	ListWithImages(ctx context.Context) ([]models.Destination, error)
}

type TripRepository interface {
	Create(ctx context.Context, t *models.Trip) error
	Update(ctx context.Context, t *models.Trip) error
	// Delete removes the trip and, in the same transaction, its destinations.
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Trip, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Trip, error)
	ListAll(ctx context.Context) ([]models.Trip, error)
}

type ItineraryRepository interface {
	Create(ctx context.Context, it *models.Itinerary) error
	// CreateWithCities stores the itinerary and its stops together or not at all.
	CreateWithCities(ctx context.Context, it *models.Itinerary, stops []models.ItineraryCity) error
	Update(ctx context.Context, it *models.Itinerary) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Itinerary, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Itinerary, error)

	ListCities(ctx context.Context, itineraryID uint) ([]models.ItineraryCity, error)
	AddCity(ctx context.Context, stop *models.ItineraryCity) error
	RemoveCity(ctx context.Context, itineraryID, stopID uint) error

	ListActivities(ctx context.Context, itineraryID uint) ([]models.ItineraryActivity, error)
	AddActivity(ctx context.Context, a *models.ItineraryActivity) error
	RemoveActivity(ctx context.Context, itineraryID, entryID uint) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type CatalogRepository interface {
	CreateCountry(ctx context.Context, c *models.Country) error
	CreateCity(ctx context.Context, c *models.City) error
	FindCity(ctx context.Context, id uint) (*models.City, error)
	SearchCities(ctx context.Context, prefix string, limit int) ([]models.City, error)
	ListCities(ctx context.Context) ([]models.City, error)
	CreateActivity(ctx context.Context, a *models.Activity) error
	FindActivity(ctx context.Context, id uint) (*models.Activity, error)
	ListActivities(ctx context.Context, cityID uint) ([]models.Activity, error)
	CreateTransportation(ctx context.Context, t *models.Transportation) error
	ListTransportation(ctx context.Context) ([]models.Transportation, error)
	ListDepartures(ctx context.Context, cityID uint) ([]models.Transportation, error)
}

// isUniqueViolation recognizes both the translated gorm error and a raw
// postgres 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
