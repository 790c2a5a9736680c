package repositories

import (
	"context"

	"gorm.io/gorm"

	"travel_planner/internal/models"
)

type GormItineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) *GormItineraryRepository {
	return &GormItineraryRepository{db: db}
}

func (r *GormItineraryRepository) Create(ctx context.Context, it *models.Itinerary) error {
	return r.db.WithContext(ctx).Omit("Cities", "Activities").Create(it).Error
}

func (r *GormItineraryRepository) CreateWithCities(ctx context.Context, it *models.Itinerary, stops []models.ItineraryCity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cities", "Activities").Create(it).Error; err != nil {
			return err
		}
		for i := range stops {
			stops[i].ItineraryID = it.ID
			if err := tx.Omit("City").Create(&stops[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormItineraryRepository) Update(ctx context.Context, it *models.Itinerary) error {
	return r.db.WithContext(ctx).Omit("Cities", "Activities").Save(it).Error
}

func (r *GormItineraryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("itinerary_id = ?", id).Delete(&models.ItineraryActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("itinerary_id = ?", id).Delete(&models.ItineraryCity{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Itinerary{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormItineraryRepository) FindByID(ctx context.Context, id uint) (*models.Itinerary, error) {
	var it models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Cities", func(db *gorm.DB) *gorm.DB { return db.Order("arrival_date").Order("id") }).
		Preload("Cities.City").
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("day_number").Order("sort_order") }).
		Preload("Activities.Activity").
		First(&it, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *GormItineraryRepository) ListByUser(ctx context.Context, userID uint) ([]models.Itinerary, error) {
	var out []models.Itinerary
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *GormItineraryRepository) ListCities(ctx context.Context, itineraryID uint) ([]models.ItineraryCity, error) {
	var out []models.ItineraryCity
	err := r.db.WithContext(ctx).Preload("City").
		Where("itinerary_id = ?", itineraryID).Order("arrival_date").Order("id").Find(&out).Error
	return out, err
}

func (r *GormItineraryRepository) AddCity(ctx context.Context, stop *models.ItineraryCity) error {
	return r.db.WithContext(ctx).Omit("City").Create(stop).Error
}

func (r *GormItineraryRepository) RemoveCity(ctx context.Context, itineraryID, stopID uint) error {
	res := r.db.WithContext(ctx).Where("itinerary_id = ?", itineraryID).Delete(&models.ItineraryCity{}, stopID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormItineraryRepository) ListActivities(ctx context.Context, itineraryID uint) ([]models.ItineraryActivity, error) {
	var out []models.ItineraryActivity
	err := r.db.WithContext(ctx).Preload("Activity").
		Where("itinerary_id = ?", itineraryID).Order("day_number").Order("sort_order").Find(&out).Error
	return out, err
}

func (r *GormItineraryRepository) AddActivity(ctx context.Context, a *models.ItineraryActivity) error {
	if err := r.db.WithContext(ctx).Omit("Activity").Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateActivity
		}
		return err
	}
	return nil
}

func (r *GormItineraryRepository) RemoveActivity(ctx context.Context, itineraryID, entryID uint) error {
	res := r.db.WithContext(ctx).Where("itinerary_id = ?", itineraryID).Delete(&models.ItineraryActivity{}, entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
