package models

const (
	TransportPlane = "PLANE"
	TransportTrain = "TRAIN"
	TransportBus   = "BUS"
	TransportFerry = "FERRY"
	TransportOther = "OTHER"
)

// Transportation is a travel option between two cities.
type Transportation struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OriginID      uint    `gorm:"index;not null" json:"origin_id"`
	Origin        City    `gorm:"foreignKey:OriginID;constraint:OnDelete:CASCADE;" json:"origin"`
	DestinationID uint    `gorm:"index;not null" json:"destination_id"`
	Destination   City    `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE;" json:"destination"`
	TransportType string  `gorm:"size:10;not null" json:"transport_type"`
	Company       string  `gorm:"size:100" json:"company"`
	DurationHours float64 `gorm:"type:numeric(5,2)" json:"duration_hours"`
	PriceMin      float64 `gorm:"type:numeric(8,2)" json:"price_min"`
	Notes         string  `gorm:"type:text" json:"notes"`
	BookingURL    string  `gorm:"size:200" json:"booking_url"`
}
