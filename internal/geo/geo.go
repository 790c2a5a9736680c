// Package geo renders destinations and cities as GeoJSON for map views.
package geo

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"travel_planner/internal/models"
)

var ErrNotPoint = errors.New("geometry is not a point")

// Point builds an XY point. Coordinates are longitude first.
func Point(lon, lat float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{lon, lat})
}

// ParsePoint reads a GeoJSON Point such as
// {"type":"Point","coordinates":[-9.14,38.72]}.
func ParsePoint(raw string) (lon, lat float64, err error) {
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return 0, 0, fmt.Errorf("parse geojson: %w", err)
	}
	p, ok := g.(*geom.Point)
	if !ok || p.Empty() {
		return 0, 0, ErrNotPoint
	}
	return p.X(), p.Y(), nil
}

// DestinationGeometry is nil when the destination has no coordinates.
func DestinationGeometry(d models.Destination) (*gjson.Geometry, error) {
	if !d.HasCoordinates() {
		return nil, nil
	}
	return gjson.Encode(Point(*d.Longitude, *d.Latitude))
}

func DestinationFeature(d models.Destination) *gjson.Feature {
	if !d.HasCoordinates() {
		return nil
	}
	return &gjson.Feature{
		ID:       strconv.FormatUint(uint64(d.ID), 10),
		Geometry: Point(*d.Longitude, *d.Latitude),
		Properties: map[string]interface{}{
			"name":     d.Name,
			"slug":     d.Slug,
			"location": d.FullLocation(),
		},
	}
}

// Destinations skips entries without coordinates.
func Destinations(list []models.Destination) *gjson.FeatureCollection {
	fc := &gjson.FeatureCollection{Features: []*gjson.Feature{}}
	for _, d := range list {
		if f := DestinationFeature(d); f != nil {
			fc.Features = append(fc.Features, f)
		}
	}
	return fc
}

func Cities(list []models.City) *gjson.FeatureCollection {
	fc := &gjson.FeatureCollection{Features: []*gjson.Feature{}}
	for _, c := range list {
		if c.Longitude == nil || c.Latitude == nil {
			continue
		}
		props := map[string]interface{}{
			"name":       c.Name,
			"is_popular": c.IsPopular,
		}
		if c.Country != nil {
			props["country"] = c.Country.Name
		}
		fc.Features = append(fc.Features, &gjson.Feature{
			ID:         strconv.FormatUint(uint64(c.ID), 10),
			Geometry:   Point(*c.Longitude, *c.Latitude),
			Properties: props,
		})
	}
	return fc
}
