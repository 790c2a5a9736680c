package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"travel_planner/internal/models"
)

type GormDestinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) *GormDestinationRepository {
	return &GormDestinationRepository{db: db}
}

func (r *GormDestinationRepository) Create(ctx context.Context, d *models.Destination) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *GormDestinationRepository) Update(ctx context.Context, d *models.Destination) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *GormDestinationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Destination{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormDestinationRepository) FindByID(ctx context.Context, id uint) (*models.Destination, error) {
	var d models.Destination
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *GormDestinationRepository) FindBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	var d models.Destination
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&d).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *GormDestinationRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Destination{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormDestinationRepository) List(ctx context.Context, q DestinationQuery) ([]models.Destination, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Destination{})
	if s := strings.TrimSpace(q.Search); s != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name"
	if DestinationOrderColumns[q.OrderBy] {
		order = q.OrderBy
	}
	if q.Desc {
		order += " DESC"
	}
	query = query.Order(order).Order("id")
	if q.Limit > 0 {
		query = query.Limit(q.Limit).Offset(q.Offset)
	}

	var out []models.Destination
	if err := query.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *GormDestinationRepository) ListByTrip(ctx context.Context, tripID uint) ([]models.Destination, error) {
	var out []models.Destination
	err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("arrival_date").Order("id").Find(&out).Error
	return out, err
}

func (r *GormDestinationRepository) ListWithImages(ctx context.Context) ([]models.Destination, error) {
	var out []models.Destination
	err := r.db.WithContext(ctx).Where("image_path <> ''").Order("id").Find(&out).Error
	return out, err
}
