package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"travel_planner/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// DSN builds the postgres data source name.
func (s *Settings) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort, s.DBSSLMode, s.DBTimezone,
	)
}

// InitDB opens the connection and stores it in DB. Unique violations come
// back as gorm.ErrDuplicatedKey.
func InitDB(s *Settings) error {
	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db
	return nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Destination{},
		&models.Country{},
		&models.City{},
		&models.Activity{},
		&models.Transportation{},
		&models.Itinerary{},
		&models.ItineraryCity{},
		&models.ItineraryActivity{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	logrus.Info("database migrated")
	return nil
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
