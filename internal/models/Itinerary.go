package models

import (
	"time"
)

// Itinerary is a user's plan across several cities.
type Itinerary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	Budget      *float64   `gorm:"type:numeric(10,2)" json:"budget"`
	Status      Status     `gorm:"size:20;not null;default:'draft'" json:"status"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`

	Cities     []ItineraryCity     `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE;" json:"cities,omitempty"`
	Activities []ItineraryActivity `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE;" json:"activities,omitempty"`
}

// TotalDays counts both boundary days; zero when the range is partial.
func (i Itinerary) TotalDays() int {
	if i.StartDate == nil || i.EndDate == nil {
		return 0
	}
	return DaysBetween(*i.StartDate, *i.EndDate) + 1
}
