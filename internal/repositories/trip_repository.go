package repositories

import (
	"context"

	"gorm.io/gorm"

	"travel_planner/internal/models"
)

type GormTripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

func (r *GormTripRepository) Create(ctx context.Context, t *models.Trip) error {
	return r.db.WithContext(ctx).Omit("Destinations").Create(t).Error
}

func (r *GormTripRepository) Update(ctx context.Context, t *models.Trip) error {
	return r.db.WithContext(ctx).Omit("Destinations").Save(t).Error
}

// Delete removes the destinations first so the cascade does not depend on
// the foreign key having been created with ON DELETE CASCADE.
func (r *GormTripRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", id).Delete(&models.Destination{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Trip{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormTripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := r.db.WithContext(ctx).
		Preload("Destinations", func(db *gorm.DB) *gorm.DB { return db.Order("arrival_date").Order("id") }).
		First(&t, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *GormTripRepository) ListByUser(ctx context.Context, userID uint) ([]models.Trip, error) {
	var out []models.Trip
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_date DESC").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *GormTripRepository) ListAll(ctx context.Context) ([]models.Trip, error) {
	var out []models.Trip
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}
