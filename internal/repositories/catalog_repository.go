package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"travel_planner/internal/models"
)

// GormCatalogRepository serves the reference data: countries, cities,
// activities and transportation options.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) CreateCountry(ctx context.Context, c *models.Country) error {
	return r.db.WithContext(ctx).Omit("Cities").Create(c).Error
}

func (r *GormCatalogRepository) CreateCity(ctx context.Context, c *models.City) error {
	return r.db.WithContext(ctx).Omit("Country").Create(c).Error
}

func (r *GormCatalogRepository) FindCity(ctx context.Context, id uint) (*models.City, error) {
	var c models.City
	if err := r.db.WithContext(ctx).Preload("Country").First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormCatalogRepository) SearchCities(ctx context.Context, prefix string, limit int) ([]models.City, error) {
	var out []models.City
	err := r.db.WithContext(ctx).Preload("Country").
		Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%").
		Order("is_popular DESC").Order("name").
		Limit(limit).Find(&out).Error
	return out, err
}

func (r *GormCatalogRepository) ListCities(ctx context.Context) ([]models.City, error) {
	var out []models.City
	err := r.db.WithContext(ctx).Preload("Country").Order("name").Find(&out).Error
	return out, err
}

func (r *GormCatalogRepository) CreateActivity(ctx context.Context, a *models.Activity) error {
	return r.db.WithContext(ctx).Omit("Destination").Create(a).Error
}

func (r *GormCatalogRepository) FindActivity(ctx context.Context, id uint) (*models.Activity, error) {
	var a models.Activity
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *GormCatalogRepository) ListActivities(ctx context.Context, cityID uint) ([]models.Activity, error) {
	var out []models.Activity
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if cityID != 0 {
		q = q.Where("city_id = ?", cityID)
	}
	err := q.Order("name").Find(&out).Error
	return out, err
}

func (r *GormCatalogRepository) CreateTransportation(ctx context.Context, t *models.Transportation) error {
	return r.db.WithContext(ctx).Omit("Origin", "Destination").Create(t).Error
}

func (r *GormCatalogRepository) ListTransportation(ctx context.Context) ([]models.Transportation, error) {
	var out []models.Transportation
	err := r.db.WithContext(ctx).Preload("Origin").Preload("Destination").Order("id").Find(&out).Error
	return out, err
}

func (r *GormCatalogRepository) ListDepartures(ctx context.Context, cityID uint) ([]models.Transportation, error) {
	var out []models.Transportation
	err := r.db.WithContext(ctx).Preload("Origin").Preload("Destination").
		Where("origin_id = ?", cityID).Order("price_min").Find(&out).Error
	return out, err
}
