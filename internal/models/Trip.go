// internal/models/trip.go
package models

import (
	"time"
)

const DefaultTripName = "Unnamed Trip"

// Trip groups destinations for one user. Status and Budget feed the dashboard.
type Trip struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string     `gorm:"size:200;not null;default:'Unnamed Trip'" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	Budget      *float64   `gorm:"type:numeric(10,2)" json:"budget"`
	Status      Status     `gorm:"size:20;not null;default:'draft'" json:"status"`

	Destinations []Destination `gorm:"foreignKey:TripID" json:"destinations,omitempty"`
}

// DurationDays returns end minus start in days, or nil for partial ranges.
func (t Trip) DurationDays() *int {
	if t.StartDate == nil || t.EndDate == nil {
		return nil
	}
	days := DaysBetween(*t.StartDate, *t.EndDate)
	return &days
}
