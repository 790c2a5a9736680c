package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
)

func TestCreateAssignsUniqueSlugs(t *testing.T) {
	f := newFixture(t)

	want := []string{"paris", "paris-1", "paris-2"}
	for _, slug := range want {
		res, err := f.destinations.Create(ctx, DestinationInput{Name: "Paris"})
		require.NoError(t, err)
		assert.Equal(t, slug, res.Destination.Slug)
	}
}

func TestCreateUsesPlaceholderForSymbolName(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, "destination", res.Destination.Slug)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.destinations.Create(ctx, DestinationInput{Name: "Taken", Slug: "taken"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    DestinationInput
		field string
	}{
		{"missing name", DestinationInput{}, "name"},
		{"bad slug", DestinationInput{Name: "X", Slug: "Not A Slug"}, "slug"},
		{"taken slug", DestinationInput{Name: "X", Slug: "taken"}, "slug"},
		{"unknown trip", DestinationInput{Name: "X", TripID: ptr(uint(999))}, "trip_id"},
		{"departure before arrival", DestinationInput{Name: "X", ArrivalDate: day("2024-05-10"), DepartureDate: day("2024-05-09")}, "departure_date"},
		{"longitude without latitude", DestinationInput{Name: "X", Longitude: ptr(12.5)}, "latitude"},
		{"latitude out of range", DestinationInput{Name: "X", Longitude: ptr(0.0), Latitude: ptr(91.0)}, "latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.destinations.Create(ctx, tt.in)
			require.Error(t, err)
			assert.Contains(t, fieldsOf(t, err), tt.field)
		})
	}
}

func TestCreateAllowsSameDayStay(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{
		Name:          "Day trip",
		ArrivalDate:   day("2024-05-10"),
		DepartureDate: day("2024-05-10"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Destination.DurationDays())
	assert.Equal(t, 0, *res.Destination.DurationDays())
}

func TestCreateResizesUploadedImage(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{
		Name:  "Lisbon",
		Image: jpegUpload(t, "lisbon.jpg", 1600, 900),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	w, h, err := f.images.Store().Dimensions(res.Destination.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 450, h)
}

func TestCreateRejectsUnsupportedUpload(t *testing.T) {
	f := newFixture(t)
	up := jpegUpload(t, "notes.txt", 10, 10)
	_, err := f.destinations.Create(ctx, DestinationInput{Name: "Rome", Image: up})
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "image")
	assert.Empty(t, storedImages(t, f))
}

func TestUpdateReplacesImage(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Oslo", Image: jpegUpload(t, "a.jpg", 100, 100)})
	require.NoError(t, err)
	old := res.Destination.ImagePath

	upd, err := f.destinations.Update(ctx, res.Destination.ID, DestinationInput{Name: "Oslo", Image: jpegUpload(t, "b.jpg", 120, 80)})
	require.NoError(t, err)

	assert.NotEqual(t, old, upd.Destination.ImagePath)
	assert.Equal(t, []string{upd.Destination.ImagePath}, storedImages(t, f))
}

func TestUpdateClearImage(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Oslo", Image: jpegUpload(t, "a.jpg", 50, 50)})
	require.NoError(t, err)

	upd, err := f.destinations.Update(ctx, res.Destination.ID, DestinationInput{Name: "Oslo", ClearImage: true})
	require.NoError(t, err)
	assert.Empty(t, upd.Destination.ImagePath)
	assert.Empty(t, storedImages(t, f))
}

func TestUpdateWithoutUploadKeepsImage(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Oslo", Image: jpegUpload(t, "a.jpg", 50, 50)})
	require.NoError(t, err)

	upd, err := f.destinations.Update(ctx, res.Destination.ID, DestinationInput{Name: "Oslo fjord"})
	require.NoError(t, err)
	assert.Equal(t, res.Destination.ImagePath, upd.Destination.ImagePath)
	assert.Len(t, storedImages(t, f), 1)
}

func TestUpdateKeepsSlugWhenBlank(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Berlin"})
	require.NoError(t, err)

	upd, err := f.destinations.Update(ctx, res.Destination.ID, DestinationInput{Name: "Berlin Mitte"})
	require.NoError(t, err)
	assert.Equal(t, "berlin", upd.Destination.Slug)
	assert.Equal(t, "Berlin Mitte", upd.Destination.Name)

	upd, err = f.destinations.Update(ctx, res.Destination.ID, DestinationInput{Name: "Berlin", Slug: "berlin"})
	require.NoError(t, err, "a record may keep its own slug")
	assert.Equal(t, "berlin", upd.Destination.Slug)
}

func TestDeleteRemovesRecordAndFile(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Nice", Image: jpegUpload(t, "n.jpg", 40, 40)})
	require.NoError(t, err)

	require.NoError(t, f.destinations.Delete(ctx, res.Destination.ID))

	_, err = f.destinations.Get(ctx, res.Destination.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, storedImages(t, f))
}

func TestDeleteWithMissingFileSucceeds(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Nice", Image: jpegUpload(t, "n.jpg", 40, 40)})
	require.NoError(t, err)
	_, err = f.images.Store().Delete(res.Destination.ImagePath)
	require.NoError(t, err)

	assert.NoError(t, f.destinations.Delete(ctx, res.Destination.ID))
}

// racingDestinations inserts a competing row carrying the same slug right
// before the first Create goes through.
type racingDestinations struct {
	*repositories.MemoryDestinations
	raced bool
}

func (r *racingDestinations) Create(ctx context.Context, d *models.Destination) error {
	if !r.raced {
		r.raced = true
		if err := r.MemoryDestinations.Create(ctx, &models.Destination{Name: "rival", Slug: d.Slug}); err != nil {
			return err
		}
	}
	return r.MemoryDestinations.Create(ctx, d)
}

func TestCreateRetriesAfterSlugRace(t *testing.T) {
	f := newFixture(t)
	svc := NewDestinationService(&racingDestinations{MemoryDestinations: f.mem.Destinations}, f.mem.Trips, f.images)

	res, err := svc.Create(ctx, DestinationInput{Name: "Kyoto"})
	require.NoError(t, err)
	assert.Equal(t, "kyoto-1", res.Destination.Slug)
}

func TestCreateExplicitSlugLosingRaceIsFieldError(t *testing.T) {
	f := newFixture(t)
	svc := NewDestinationService(&racingDestinations{MemoryDestinations: f.mem.Destinations}, f.mem.Trips, f.images)

	_, err := svc.Create(ctx, DestinationInput{Name: "Kyoto", Slug: "kyoto", Image: jpegUpload(t, "k.jpg", 20, 20)})
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "slug")
	assert.Empty(t, storedImages(t, f), "upload is discarded when the insert fails")
}

func TestListSearchAndPages(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		_, err := f.destinations.Create(ctx, DestinationInput{Name: "Beach"})
		require.NoError(t, err)
	}
	_, err := f.destinations.Create(ctx, DestinationInput{Name: "Mountain"})
	require.NoError(t, err)

	page, err := f.destinations.List(ctx, "beach", "name", false, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages())
}

func TestListGeoOnlyReturnsMappedDestinations(t *testing.T) {
	f := newFixture(t)
	_, err := f.destinations.Create(ctx, DestinationInput{Name: "Mapped", Longitude: ptr(2.35), Latitude: ptr(48.85)})
	require.NoError(t, err)
	_, err = f.destinations.Create(ctx, DestinationInput{Name: "Unmapped"})
	require.NoError(t, err)

	list, err := f.destinations.ListGeo(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mapped", list[0].Name)
}

func TestResizeAllShrinksStoredImages(t *testing.T) {
	f := newFixture(t)
	res, err := f.destinations.Create(ctx, DestinationInput{Name: "Raw"})
	require.NoError(t, err)

	// An image written outside the save path, as after a crash.
	up := jpegUpload(t, "raw.jpg", 1200, 1200)
	p, err := f.images.Save(up.Content, up.Filename)
	require.NoError(t, err)
	d := res.Destination
	d.ImagePath = p
	require.NoError(t, f.mem.Destinations.Update(ctx, d))

	n, err := f.destinations.ResizeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	w, h, err := f.images.Store().Dimensions(p)
	require.NoError(t, err)
	assert.Equal(t, 600, w)
	assert.Equal(t, 600, h)
}

func TestPruneImages(t *testing.T) {
	f := newFixture(t)
	kept, err := f.destinations.Create(ctx, DestinationInput{Name: "Kept", Image: jpegUpload(t, "k.jpg", 30, 30)})
	require.NoError(t, err)
	up := jpegUpload(t, "orphan.jpg", 30, 30)
	orphan, err := f.images.Save(up.Content, up.Filename)
	require.NoError(t, err)

	found, err := f.destinations.PruneImages(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{orphan}, found)
	assert.Len(t, storedImages(t, f), 2)

	_, err = f.destinations.PruneImages(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.Destination.ImagePath}, storedImages(t, f))
}

func TestPopulateFromTrips(t *testing.T) {
	f := newFixture(t)
	empty, err := f.trips.Create(ctx, 1, TripInput{Name: "Alps", StartDate: day("2024-01-01"), EndDate: day("2024-01-05")})
	require.NoError(t, err)
	busy, err := f.trips.Create(ctx, 1, TripInput{Name: "Coast"})
	require.NoError(t, err)
	_, err = f.destinations.Create(ctx, DestinationInput{Name: "Harbour", TripID: &busy.ID})
	require.NoError(t, err)

	created, err := f.destinations.PopulateFromTrips(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "alps", created[0].Slug)
	assert.Equal(t, empty.ID, *created[0].TripID)

	again, err := f.destinations.PopulateFromTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}
