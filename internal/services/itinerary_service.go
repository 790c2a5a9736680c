package services

import (
	"context"
	"strings"
	"time"

	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/validation"
)

const timeLayout = "15:04"

type ItineraryInput struct {
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Status      models.Status
	IsPublic    bool
	// CityIDs seeds the itinerary's cities on creation.
	CityIDs []uint
}

type StopInput struct {
	CityID        uint
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Notes         string
}

type ScheduleInput struct {
	ActivityID uint
	DayNumber  int
	StartTime  string
	EndTime    string
	Notes      string
	Order      int
}

type ItineraryService struct {
	itineraries repositories.ItineraryRepository
	catalog     repositories.CatalogRepository
}

func NewItineraryService(itineraries repositories.ItineraryRepository, catalog repositories.CatalogRepository) *ItineraryService {
	return &ItineraryService{itineraries: itineraries, catalog: catalog}
}

func (s *ItineraryService) List(ctx context.Context, userID uint) ([]models.Itinerary, error) {
	return s.itineraries.ListByUser(ctx, userID)
}

// Get returns an itinerary the user owns or one that is public.
func (s *ItineraryService) Get(ctx context.Context, userID, id uint) (*models.Itinerary, error) {
	it, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID && !it.IsPublic {
		return nil, ErrForbidden
	}
	return it, nil
}

func (s *ItineraryService) owned(ctx context.Context, userID, id uint) (*models.Itinerary, error) {
	it, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID {
		return nil, ErrForbidden
	}
	return it, nil
}

func (s *ItineraryService) Create(ctx context.Context, userID uint, in ItineraryInput) (*models.Itinerary, error) {
	errs := validateItinerary(&in)
	if len(in.CityIDs) == 0 {
		errs.Add("cities", "select at least one city")
	}
	for _, id := range in.CityIDs {
		if _, err := s.catalog.FindCity(ctx, id); err != nil {
			errs.Add("cities", "city %d does not exist", id)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	it := &models.Itinerary{UserID: userID}
	applyItineraryInput(it, in)
	var stops []models.ItineraryCity
	seen := map[uint]bool{}
	for _, id := range in.CityIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		stops = append(stops, models.ItineraryCity{CityID: id})
	}
	if err := s.itineraries.CreateWithCities(ctx, it, stops); err != nil {
		return nil, err
	}
	return s.itineraries.FindByID(ctx, it.ID)
}

func (s *ItineraryService) Update(ctx context.Context, userID, id uint, in ItineraryInput) (*models.Itinerary, error) {
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if errs := validateItinerary(&in); len(errs) > 0 {
		return nil, errs
	}
	applyItineraryInput(it, in)
	if err := s.itineraries.Update(ctx, it); err != nil {
		return nil, err
	}
	return s.itineraries.FindByID(ctx, id)
}

func (s *ItineraryService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.itineraries.Delete(ctx, id)
}

// AddCity adds a city stop. Its dates may not overlap any other stop of the
// same itinerary, boundary days included.
func (s *ItineraryService) AddCity(ctx context.Context, userID, itineraryID uint, in StopInput) (*models.ItineraryCity, error) {
	if _, err := s.owned(ctx, userID, itineraryID); err != nil {
		return nil, err
	}

	var errs validation.Errors
	if _, err := s.catalog.FindCity(ctx, in.CityID); err != nil {
		errs.Add("city_id", "select a valid city")
	}
	candidate := validation.Range{Start: in.ArrivalDate, End: in.DepartureDate}
	if fe := validation.CheckRange(candidate, "departure_date", "departure date must be on or after the arrival date"); fe != nil {
		errs = append(errs, *fe)
	} else {
		stops, err := s.itineraries.ListCities(ctx, itineraryID)
		if err != nil {
			return nil, err
		}
		siblings := make([]validation.Range, 0, len(stops))
		for _, st := range stops {
			siblings = append(siblings, validation.Range{Start: st.ArrivalDate, End: st.DepartureDate})
		}
		if fe := validation.CheckOverlap(candidate, siblings, "arrival_date", "dates overlap with another city in this itinerary"); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	stop := &models.ItineraryCity{
		ItineraryID:   itineraryID,
		CityID:        in.CityID,
		ArrivalDate:   in.ArrivalDate,
		DepartureDate: in.DepartureDate,
		Notes:         in.Notes,
	}
	if err := s.itineraries.AddCity(ctx, stop); err != nil {
		return nil, err
	}
	return stop, nil
}

func (s *ItineraryService) RemoveCity(ctx context.Context, userID, itineraryID, stopID uint) error {
	if _, err := s.owned(ctx, userID, itineraryID); err != nil {
		return err
	}
	return s.itineraries.RemoveCity(ctx, itineraryID, stopID)
}

// AddActivity schedules an activity. Scheduling the same activity twice on
// one day yields repositories.ErrDuplicateActivity.
func (s *ItineraryService) AddActivity(ctx context.Context, userID, itineraryID uint, in ScheduleInput) (*models.ItineraryActivity, error) {
	it, err := s.owned(ctx, userID, itineraryID)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	activity, err := s.catalog.FindActivity(ctx, in.ActivityID)
	if err != nil {
		errs.Add("activity_id", "select a valid activity")
	}
	if in.DayNumber < 1 {
		errs.Add("day_number", "must be 1 or greater")
	} else if days := it.TotalDays(); days > 0 && in.DayNumber > days {
		errs.Add("day_number", "itinerary only has %d days", days)
	}
	if in.Order < 0 {
		errs.Add("order", "must not be negative")
	}
	start, startOK := parseClock(in.StartTime)
	end, endOK := parseClock(in.EndTime)
	if !startOK {
		errs.Add("start_time", "enter a valid time (HH:MM)")
	}
	if !endOK {
		errs.Add("end_time", "enter a valid time (HH:MM)")
	}
	if startOK && endOK && start != nil && end != nil && end.Before(*start) {
		errs.Add("end_time", "end time cannot be before the start time")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	entry := &models.ItineraryActivity{
		ItineraryID: itineraryID,
		ActivityID:  in.ActivityID,
		DayNumber:   in.DayNumber,
		StartTime:   strings.TrimSpace(in.StartTime),
		EndTime:     strings.TrimSpace(in.EndTime),
		Notes:       in.Notes,
		Order:       in.Order,
	}
	if err := s.itineraries.AddActivity(ctx, entry); err != nil {
		return nil, err
	}
	entry.Activity = *activity
	return entry, nil
}

func (s *ItineraryService) RemoveActivity(ctx context.Context, userID, itineraryID, entryID uint) error {
	if _, err := s.owned(ctx, userID, itineraryID); err != nil {
		return err
	}
	return s.itineraries.RemoveActivity(ctx, itineraryID, entryID)
}

// parseClock accepts "" (unset) or HH:MM.
func parseClock(v string) (*time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func validateItinerary(in *ItineraryInput) validation.Errors {
	var errs validation.Errors
	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		errs.Add("title", "this field is required")
	case len(in.Title) > 200:
		errs.Add("title", "must be at most 200 characters")
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
		"end_date", "start date must be before the end date",
	); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

func applyItineraryInput(it *models.Itinerary, in ItineraryInput) {
	it.Title = in.Title
	it.Description = in.Description
	it.StartDate = in.StartDate
	it.EndDate = in.EndDate
	it.Budget = in.Budget
	it.Status = in.Status
	it.IsPublic = in.IsPublic
}
