package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/media"
	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/validation"
)

type fixture struct {
	mem          *repositories.Memory
	images       *media.Images
	destinations *DestinationService
	trips        *TripService
	itineraries  *ItineraryService
	catalog      *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, memfs.New())
}

// newFixtureOn builds the services over the given media filesystem.
func newFixtureOn(t *testing.T, fs billy.Filesystem) *fixture {
	t.Helper()
	mem := repositories.NewMemory()
	images := media.NewImages(media.NewStore(fs), media.DefaultOptions())
	return &fixture{
		mem:          mem,
		images:       images,
		destinations: NewDestinationService(mem.Destinations, mem.Trips, images),
		trips:        NewTripService(mem.Trips, mem.Destinations, images),
		itineraries:  NewItineraryService(mem.Itineraries, mem.Catalog),
		catalog:      NewCatalogService(mem.Catalog, mem.Destinations),
	}
}

func jpegUpload(t *testing.T, name string, w, h int) *Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 5 {
		img.Set(x, x%h, color.RGBA{R: 10, G: 120, B: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return &Upload{Filename: name, Content: &buf}
}

// headerOnlyPNG declares a w x h canvas in its IHDR and carries no pixel data.
func headerOnlyPNG(w, h uint32) *bytes.Buffer {
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12], ihdr[13] = 8, 2

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(ihdr)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(ihdr))
	return &buf
}

func day(s string) *time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ptr[T any](v T) *T { return &v }

// fieldsOf fails the test unless err is a validation.Errors.
func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	return errs.Fields()
}

func storedImages(t *testing.T, f *fixture) []string {
	t.Helper()
	files, err := f.images.Store().List(media.Dir)
	require.NoError(t, err)
	return files
}

var ctx = context.Background()
