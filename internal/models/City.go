package models

type Country struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Code     string `gorm:"size:2" json:"code"`
	Currency string `gorm:"size:3" json:"currency"`
	Language string `gorm:"size:50" json:"language"`

	Cities []City `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE;" json:"cities,omitempty"`
}

type City struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:100;not null;index" json:"name"`
	CountryID   uint     `gorm:"index;not null" json:"country_id"`
	Country     *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Description string   `gorm:"type:text" json:"description"`
	IsPopular   bool     `gorm:"default:false" json:"is_popular"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}
