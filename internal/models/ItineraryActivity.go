package models

// ItineraryActivity schedules an activity on a given day of an itinerary.
// StartTime and EndTime use "15:04" and are empty when unset.
type ItineraryActivity struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ItineraryID uint     `gorm:"not null;uniqueIndex:idx_itinerary_activity_day" json:"itinerary_id"`
	ActivityID  uint     `gorm:"not null;uniqueIndex:idx_itinerary_activity_day" json:"activity_id"`
	Activity    Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;" json:"activity"`
	DayNumber   int      `gorm:"not null;uniqueIndex:idx_itinerary_activity_day" json:"day_number"`
	StartTime   string   `gorm:"size:5" json:"start_time"`
	EndTime     string   `gorm:"size:5" json:"end_time"`
	Notes       string   `gorm:"type:text" json:"notes"`
	Order       int      `gorm:"column:sort_order;default:0" json:"order"`
}
