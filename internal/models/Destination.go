// internal/models/destination.go
package models

import (
	"strings"
	"time"
)

// Destination is a place visited on a trip. Slug is the public identifier and
// ImagePath is relative to the media store root.
type Destination struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"size:200;not null" json:"name"`
	City    string `gorm:"size:100;index:idx_destinations_city_country" json:"city"`
	Country string `gorm:"size:100;index:idx_destinations_city_country" json:"country"`
	Slug    string `gorm:"size:200;uniqueIndex;not null" json:"slug"`

	// Optional owner; deleting the trip deletes its destinations.
	TripID *uint `gorm:"index" json:"trip_id"`
	Trip   *Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ArrivalDate   *time.Time `gorm:"type:date;index" json:"arrival_date"`
	DepartureDate *time.Time `gorm:"type:date" json:"departure_date"`

	Longitude *float64 `gorm:"type:numeric(10,7)" json:"longitude"`
	Latitude  *float64 `gorm:"type:numeric(10,7)" json:"latitude"`

	ImagePath   string `gorm:"size:255" json:"image"`
	Description string `gorm:"type:text" json:"description"`
}

// FullLocation joins city and country, skipping blanks.
func (d Destination) FullLocation() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{d.City, d.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (d Destination) HasCoordinates() bool {
	return d.Longitude != nil && d.Latitude != nil
}

// DurationDays is the number of days between arrival and departure, or nil
// when either date is missing.
func (d Destination) DurationDays() *int {
	if d.ArrivalDate == nil || d.DepartureDate == nil {
		return nil
	}
	days := DaysBetween(*d.ArrivalDate, *d.DepartureDate)
	return &days
}
