package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"travel_planner/internal/models"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), ErrNotFound)
	other := errors.New("boom")
	assert.Equal(t, other, notFound(other))
}

func TestMemoryDestinationSlugUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory().Destinations

	a := &models.Destination{Name: "Lisbon", Slug: "lisbon"}
	require.NoError(t, repo.Create(ctx, a))
	assert.ErrorIs(t, repo.Create(ctx, &models.Destination{Name: "Lisbon", Slug: "lisbon"}), ErrDuplicateSlug)

	b := &models.Destination{Name: "Porto", Slug: "porto"}
	require.NoError(t, repo.Create(ctx, b))
	b.Slug = "lisbon"
	assert.ErrorIs(t, repo.Update(ctx, b), ErrDuplicateSlug)

	taken, err := repo.SlugExists(ctx, "lisbon", a.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a record does not collide with itself")
}

func TestMemoryDestinationList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory().Destinations
	for i, name := range []string{"Berlin", "Amsterdam", "Bern", "Cairo"} {
		require.NoError(t, repo.Create(ctx, &models.Destination{Name: name, Slug: fmt.Sprintf("d-%d", i)}))
	}

	got, total, err := repo.List(ctx, DestinationQuery{Search: "BER"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Berlin", got[0].Name)
	assert.Equal(t, "Bern", got[1].Name)

	got, total, err = repo.List(ctx, DestinationQuery{OrderBy: "name", Desc: true, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Berlin", got[0].Name)
	assert.Equal(t, "Amsterdam", got[1].Name)

	got, _, err = repo.List(ctx, DestinationQuery{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryTripDeleteCascades(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	trip := &models.Trip{Name: "Iberia", UserID: 1}
	require.NoError(t, mem.Trips.Create(ctx, trip))
	other := &models.Trip{Name: "Alps", UserID: 1}
	require.NoError(t, mem.Trips.Create(ctx, other))

	require.NoError(t, mem.Destinations.Create(ctx, &models.Destination{Name: "Madrid", Slug: "madrid", TripID: &trip.ID}))
	require.NoError(t, mem.Destinations.Create(ctx, &models.Destination{Name: "Zermatt", Slug: "zermatt", TripID: &other.ID}))

	found, err := mem.Trips.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, found.Destinations, 1)

	require.NoError(t, mem.Trips.Delete(ctx, trip.ID))
	_, err = mem.Trips.FindByID(ctx, trip.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = mem.Destinations.FindBySlug(ctx, "madrid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = mem.Destinations.FindBySlug(ctx, "zermatt")
	assert.NoError(t, err)

	assert.ErrorIs(t, mem.Trips.Delete(ctx, trip.ID), ErrNotFound)
}

func TestMemoryCreateWithCitiesIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	city := &models.City{Name: "Rome"}
	require.NoError(t, mem.Catalog.CreateCity(ctx, city))

	bad := &models.Itinerary{Title: "Broken", UserID: 1}
	err := mem.Itineraries.CreateWithCities(ctx, bad, []models.ItineraryCity{{CityID: city.ID}, {CityID: 999}})
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := mem.Itineraries.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	good := &models.Itinerary{Title: "Rome", UserID: 1}
	require.NoError(t, mem.Itineraries.CreateWithCities(ctx, good, []models.ItineraryCity{{CityID: city.ID}}))
	stops, err := mem.Itineraries.ListCities(ctx, good.ID)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, good.ID, stops[0].ItineraryID)
	assert.Equal(t, "Rome", stops[0].City.Name)
}

func TestMemoryItineraryActivityUnique(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	it := &models.Itinerary{Title: "Week in Rome", UserID: 1}
	require.NoError(t, mem.Itineraries.Create(ctx, it))

	require.NoError(t, mem.Itineraries.AddActivity(ctx, &models.ItineraryActivity{ItineraryID: it.ID, ActivityID: 5, DayNumber: 2, Order: 1}))
	require.NoError(t, mem.Itineraries.AddActivity(ctx, &models.ItineraryActivity{ItineraryID: it.ID, ActivityID: 5, DayNumber: 1}))
	assert.ErrorIs(t,
		mem.Itineraries.AddActivity(ctx, &models.ItineraryActivity{ItineraryID: it.ID, ActivityID: 5, DayNumber: 2}),
		ErrDuplicateActivity)

	list, err := mem.Itineraries.ListActivities(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].DayNumber)
	assert.Equal(t, 2, list[1].DayNumber)
}
