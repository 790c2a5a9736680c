package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"travel_planner/internal/media"
	"travel_planner/internal/metrics"
	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/slug"
	"travel_planner/internal/validation"
)

// Upload is an image file attached to a destination form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// DestinationInput carries the submitted destination fields. A blank Slug is
// derived from Name.
type DestinationInput struct {
	Name          string
	City          string
	Country       string
	Slug          string
	TripID        *uint
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Longitude     *float64
	Latitude      *float64
	Description   string
	Image         *Upload
	ClearImage    bool
}

// SaveResult is a saved destination plus any non-fatal problems met while
// post-processing its image.
type SaveResult struct {
	Destination *models.Destination
	Warnings    []string
}

// DestinationPage is one page of the destination list.
type DestinationPage struct {
	Items    []models.Destination
	Total    int64
	Page     int
	PageSize int
}

func (p DestinationPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 1
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

const DestinationPageSize = 10

type DestinationService struct {
	destinations repositories.DestinationRepository
	trips        repositories.TripRepository
	images       *media.Images
}

func NewDestinationService(destinations repositories.DestinationRepository, trips repositories.TripRepository, images *media.Images) *DestinationService {
	return &DestinationService{destinations: destinations, trips: trips, images: images}
}

func (s *DestinationService) Images() *media.Images { return s.images }

func (s *DestinationService) Get(ctx context.Context, id uint) (*models.Destination, error) {
	return s.destinations.FindByID(ctx, id)
}

func (s *DestinationService) GetBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	return s.destinations.FindBySlug(ctx, slug)
}

// List returns a page (1-based) of destinations.
func (s *DestinationService) List(ctx context.Context, search, orderBy string, desc bool, page int) (*DestinationPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.destinations.List(ctx, repositories.DestinationQuery{
		Search:  search,
		OrderBy: orderBy,
		Desc:    desc,
		Limit:   DestinationPageSize,
		Offset:  (page - 1) * DestinationPageSize,
	})
	if err != nil {
		return nil, err
	}
	return &DestinationPage{Items: items, Total: total, Page: page, PageSize: DestinationPageSize}, nil
}

// ListGeo returns every destination that has coordinates.
func (s *DestinationService) ListGeo(ctx context.Context) ([]models.Destination, error) {
	all, _, err := s.destinations.List(ctx, repositories.DestinationQuery{OrderBy: "name"})
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, d := range all {
		if d.HasCoordinates() {
			out = append(out, d)
		}
	}
	return out, nil
}

// Create validates in, stores its image, assigns a slug and inserts the
// record, then shrinks the image.
func (s *DestinationService) Create(ctx context.Context, in DestinationInput) (*SaveResult, error) {
	explicit, errs := s.validate(ctx, in, 0)
	if len(errs) > 0 {
		return nil, errs
	}

	d := &models.Destination{}
	applyDestinationInput(d, in)

	if in.Image != nil {
		p, err := s.storeUpload(in.Image)
		if err != nil {
			return nil, err
		}
		d.ImagePath = p
	}

	if err := s.insertWithSlug(ctx, d, in.Name, explicit); err != nil {
		s.images.Discard(d.ImagePath)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"id": d.ID, "slug": d.Slug}).Info("destination created")
	return &SaveResult{Destination: d, Warnings: s.reconcileImage(d)}, nil
}

// Update applies in to destination id. A new upload replaces the current
// image and the old file is removed before the record is saved.
func (s *DestinationService) Update(ctx context.Context, id uint, in DestinationInput) (*SaveResult, error) {
	d, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	explicit, errs := s.validate(ctx, in, id)
	if len(errs) > 0 {
		return nil, errs
	}
	// A blank slug on update keeps the current one.
	if explicit == "" {
		explicit = d.Slug
	}

	oldImage := d.ImagePath
	newImage := oldImage
	uploaded := ""
	if in.Image != nil {
		p, err := s.storeUpload(in.Image)
		if err != nil {
			return nil, err
		}
		newImage, uploaded = p, p
	} else if in.ClearImage {
		newImage = ""
	}

	applyDestinationInput(d, in)
	d.ImagePath = newImage

	if oldImage != "" && oldImage != newImage {
		s.images.Discard(oldImage)
	}

	if err := s.updateWithSlug(ctx, d, in.Name, explicit); err != nil {
		s.images.Discard(uploaded)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"id": d.ID, "slug": d.Slug}).Info("destination updated")
	return &SaveResult{Destination: d, Warnings: s.reconcileImage(d)}, nil
}

// Delete removes the record and then its image file.
func (s *DestinationService) Delete(ctx context.Context, id uint) error {
	d, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		return err
	}
	s.images.Discard(d.ImagePath)
	logrus.WithFields(logrus.Fields{"id": id, "slug": d.Slug}).Info("destination deleted")
	return nil
}

// ResizeAll re-applies the size bound to every stored image.
func (s *DestinationService) ResizeAll(ctx context.Context) (resized int, err error) {
	list, err := s.destinations.ListWithImages(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range list {
		changed, err := s.images.Fit(d.ImagePath)
		if err != nil {
			logrus.WithError(err).WithField("id", d.ID).Warn("resize-images: skipped")
			continue
		}
		if changed {
			resized++
		}
	}
	return resized, nil
}

// PruneImages deletes image files that no destination references and
// returns their paths. With dryRun nothing is deleted.
func (s *DestinationService) PruneImages(ctx context.Context, dryRun bool) ([]string, error) {
	list, err := s.destinations.ListWithImages(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]bool, len(list))
	for _, d := range list {
		referenced[d.ImagePath] = true
	}
	files, err := s.images.Store().List(media.Dir)
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, f := range files {
		if referenced[f] {
			continue
		}
		orphans = append(orphans, f)
		if !dryRun {
			if err := s.images.Remove(f); err != nil {
				return orphans, err
			}
		}
	}
	return orphans, nil
}

func (s *DestinationService) validate(ctx context.Context, in DestinationInput, id uint) (string, validation.Errors) {
	var errs validation.Errors

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs.Add("name", "this field is required")
	case len(name) > 200:
		errs.Add("name", "must be at most 200 characters")
	}
	if len(in.City) > 100 {
		errs.Add("city", "must be at most 100 characters")
	}
	if len(in.Country) > 100 {
		errs.Add("country", "must be at most 100 characters")
	}

	var explicit string
	if strings.TrimSpace(in.Slug) != "" {
		v, err := slug.Validate(in.Slug)
		if err != nil {
			errs.Add("slug", "enter a valid slug of lowercase letters, digits and hyphens")
		} else {
			taken, err := s.destinations.SlugExists(ctx, v, id)
			switch {
			case err != nil:
				errs.Add("slug", "could not verify slug: %v", err)
			case taken:
				errs.Add("slug", "this slug is already in use")
			default:
				explicit = v
			}
		}
	}

	if in.TripID != nil {
		if _, err := s.trips.FindByID(ctx, *in.TripID); err != nil {
			errs.Add("trip_id", "select a valid trip")
		}
	}

	if fe := validation.CheckRange(
		validation.Range{Start: in.ArrivalDate, End: in.DepartureDate},
		"departure_date", "departure date cannot be before the arrival date",
	); fe != nil {
		errs = append(errs, *fe)
	}
	errs.Merge(validation.CheckCoordinates(in.Longitude, in.Latitude))

	return explicit, errs
}

func (s *DestinationService) storeUpload(u *Upload) (string, error) {
	p, err := s.images.Save(u.Content, u.Filename)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrNotImage) {
			return "", validation.Errors{{Field: "image", Message: "upload a valid jpg, png or gif image"}}
		}
		if errors.Is(err, media.ErrTooLarge) {
			return "", validation.Errors{{Field: "image", Message: "image dimensions are too large"}}
		}
		return "", fmt.Errorf("store image: %w", err)
	}
	return p, nil
}

func (s *DestinationService) assigner(excludeID uint) *slug.Assigner {
	a := slug.NewAssigner(func(ctx context.Context, candidate string) (bool, error) {
		return s.destinations.SlugExists(ctx, candidate, excludeID)
	})
	a.OnCollision = func(string) { metrics.SlugCollisions.Inc() }
	return a
}

// insertWithSlug inserts d, picking a fresh slug again when the unique index
// rejects a generated one. An explicit slug that loses the race is reported
// as a field error.
func (s *DestinationService) insertWithSlug(ctx context.Context, d *models.Destination, name, explicit string) error {
	return s.saveWithSlug(ctx, d, name, explicit, 0, s.destinations.Create)
}

func (s *DestinationService) updateWithSlug(ctx context.Context, d *models.Destination, name, explicit string) error {
	return s.saveWithSlug(ctx, d, name, explicit, d.ID, s.destinations.Update)
}

func (s *DestinationService) saveWithSlug(ctx context.Context, d *models.Destination, name, explicit string, excludeID uint, save func(context.Context, *models.Destination) error) error {
	for attempt := 1; ; attempt++ {
		if explicit != "" {
			d.Slug = explicit
		} else {
			generated, err := s.assigner(excludeID).Assign(ctx, name)
			if err != nil {
				return err
			}
			d.Slug = generated
		}

		err := save(ctx, d)
		if !errors.Is(err, repositories.ErrDuplicateSlug) {
			return err
		}
		if explicit != "" {
			return validation.Errors{{Field: "slug", Message: "this slug is already in use"}}
		}
		if attempt >= maxSlugAttempts {
			return fmt.Errorf("assign slug for %q: %w", name, err)
		}
		metrics.SlugRetries.Inc()
		logrus.WithField("slug", d.Slug).Warn("slug taken by a concurrent insert, retrying")
	}
}

// reconcileImage runs after the record is persisted. Failures are logged and
// returned as warnings; the saved record stands.
func (s *DestinationService) reconcileImage(d *models.Destination) []string {
	if d.ImagePath == "" {
		return nil
	}
	if _, err := s.images.Fit(d.ImagePath); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"id": d.ID, "path": d.ImagePath}).Error("destination image could not be resized")
		return []string{"image was saved but could not be resized: " + err.Error()}
	}
	return nil
}

func applyDestinationInput(d *models.Destination, in DestinationInput) {
	d.Name = strings.TrimSpace(in.Name)
	d.City = strings.TrimSpace(in.City)
	d.Country = strings.TrimSpace(in.Country)
	d.TripID = in.TripID
	d.ArrivalDate = in.ArrivalDate
	d.DepartureDate = in.DepartureDate
	d.Longitude = in.Longitude
	d.Latitude = in.Latitude
	d.Description = in.Description
}

// PopulateFromTrips gives every trip without destinations one destination
// named after the trip. It returns the created records.
func (s *DestinationService) PopulateFromTrips(ctx context.Context) ([]models.Destination, error) {
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var created []models.Destination
	for _, t := range trips {
		existing, err := s.destinations.ListByTrip(ctx, t.ID)
		if err != nil {
			return created, err
		}
		if len(existing) > 0 {
			continue
		}
		tripID := t.ID
		res, err := s.Create(ctx, DestinationInput{
			Name:          t.Name,
			TripID:        &tripID,
			ArrivalDate:   t.StartDate,
			DepartureDate: t.EndDate,
			Description:   t.Description,
		})
		if err != nil {
			return created, fmt.Errorf("populate trip %d: %w", t.ID, err)
		}
		created = append(created, *res.Destination)
	}
	return created, nil
}
