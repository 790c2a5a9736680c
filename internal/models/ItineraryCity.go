package models

import "time"

// ItineraryCity is one city stop of an itinerary. Stops of the same
// itinerary must not share a day.
type ItineraryCity struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ItineraryID uint `gorm:"index;not null" json:"itinerary_id"`
	CityID      uint `gorm:"index;not null" json:"city_id"`
	City        City `gorm:"foreignKey:CityID" json:"city"`

	ArrivalDate   *time.Time `gorm:"type:date" json:"arrival_date"`
	DepartureDate *time.Time `gorm:"type:date" json:"departure_date"`
	Notes         string     `gorm:"type:text" json:"notes"`
}
