package models

import (
	"time"
)

const (
	CategoryMuseum        = "museum"
	CategoryRestaurant    = "restaurant"
	CategoryAttraction    = "attraction"
	CategoryHotel         = "hotel"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
)

type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string       `gorm:"size:200;not null" json:"name"`
	Description   string       `gorm:"type:text" json:"description"`
	Category      string       `gorm:"size:50;not null" json:"category"`
	CityID        uint         `gorm:"index;not null" json:"city_id"`
	DestinationID uint         `gorm:"index;not null" json:"destination_id"`
	Destination   *Destination `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE;" json:"-"`
	Address       string       `gorm:"size:300" json:"address"`
	Price         *float64     `gorm:"type:numeric(10,2)" json:"price"`
	DurationHours *float64     `gorm:"type:numeric(4,2)" json:"duration_hours"`
	Rating        *float64     `gorm:"type:numeric(3,2)" json:"rating"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
}
