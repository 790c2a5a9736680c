package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"travel_planner/internal/media"
	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/validation"
)

type TripInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Status      models.Status
}

type TripService struct {
	trips        repositories.TripRepository
	destinations repositories.DestinationRepository
	images       *media.Images
}

func NewTripService(trips repositories.TripRepository, destinations repositories.DestinationRepository, images *media.Images) *TripService {
	return &TripService{trips: trips, destinations: destinations, images: images}
}

func (s *TripService) List(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.trips.ListByUser(ctx, userID)
}

// ListAll is used by the destination form's trip selector and the CLI.
func (s *TripService) ListAll(ctx context.Context) ([]models.Trip, error) {
	return s.trips.ListAll(ctx)
}

// Get returns a trip owned by userID, with its destinations.
func (s *TripService) Get(ctx context.Context, userID, id uint) (*models.Trip, error) {
	t, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *TripService) Create(ctx context.Context, userID uint, in TripInput) (*models.Trip, error) {
	if errs := validateTrip(&in); len(errs) > 0 {
		return nil, errs
	}
	t := &models.Trip{UserID: userID}
	applyTripInput(t, in)
	if err := s.trips.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TripService) Update(ctx context.Context, userID, id uint, in TripInput) (*models.Trip, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if errs := validateTrip(&in); len(errs) > 0 {
		return nil, errs
	}
	applyTripInput(t, in)
	if err := s.trips.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the trip together with its destinations and their images.
func (s *TripService) Delete(ctx context.Context, userID, id uint) error {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	owned, err := s.destinations.ListByTrip(ctx, id)
	if err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, t.ID); err != nil {
		return err
	}
	for _, d := range owned {
		s.images.Discard(d.ImagePath)
	}
	logrus.WithFields(logrus.Fields{"id": id, "destinations": len(owned)}).Info("trip deleted")
	return nil
}

func validateTrip(in *TripInput) validation.Errors {
	var errs validation.Errors
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = models.DefaultTripName
	}
	if len(in.Name) > 200 {
		errs.Add("name", "must be at most 200 characters")
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.IsValid() {
		errs.Add("status", "select a valid status")
	}
	if in.Budget != nil && *in.Budget < 0 {
		errs.Add("budget", "must not be negative")
	}
	if fe := validation.CheckRange(
		validation.Range{Start: in.StartDate, End: in.EndDate},
		"end_date", "end date must be on or after the start date",
	); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

func applyTripInput(t *models.Trip, in TripInput) {
	t.Name = in.Name
	t.Description = in.Description
	t.StartDate = in.StartDate
	t.EndDate = in.EndDate
	t.Budget = in.Budget
	t.Status = in.Status
}
