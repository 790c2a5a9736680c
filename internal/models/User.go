package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password string `json:"-"`

	Trips       []Trip      `gorm:"foreignKey:UserID" json:"trips,omitempty"`
	Itineraries []Itinerary `gorm:"foreignKey:UserID" json:"itineraries,omitempty"`
}
