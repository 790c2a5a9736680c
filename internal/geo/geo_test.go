package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestParsePoint(t *testing.T) {
	lon, lat, err := ParsePoint(`{"type":"Point","coordinates":[-9.1393,38.7223]}`)
	require.NoError(t, err)
	assert.InDelta(t, -9.1393, lon, 1e-9)
	assert.InDelta(t, 38.7223, lat, 1e-9)

	_, _, err = ParsePoint(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)
	assert.ErrorIs(t, err, ErrNotPoint)

	_, _, err = ParsePoint(`not json`)
	assert.Error(t, err)
}

func TestDestinationsCollection(t *testing.T) {
	list := []models.Destination{
		{ID: 1, Name: "Lisbon", Slug: "lisbon", City: "Lisbon", Country: "Portugal", Longitude: f64(-9.14), Latitude: f64(38.72)},
		{ID: 2, Name: "Nowhere"},
	}
	raw, err := json.Marshal(Destinations(list))
	require.NoError(t, err)

	var out struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "FeatureCollection", out.Type)
	require.Len(t, out.Features, 1)
	assert.Equal(t, "1", out.Features[0].ID)
	assert.Equal(t, "Point", out.Features[0].Geometry.Type)
	assert.Equal(t, []float64{-9.14, 38.72}, out.Features[0].Geometry.Coordinates)
	assert.Equal(t, "lisbon", out.Features[0].Properties["slug"])
}

func TestDestinationGeometryWithoutCoordinates(t *testing.T) {
	g, err := DestinationGeometry(models.Destination{Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, g)
}
