package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"travel_planner/internal/models"
)

type MemoryItineraries struct{ db *memDB }

func (r *MemoryItineraries) Create(_ context.Context, it *models.Itinerary) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	it.ID = r.db.id()
	it.CreatedAt, it.UpdatedAt = time.Now(), time.Now()
	stored := *it
	stored.Cities, stored.Activities = nil, nil
	r.db.itineraries[it.ID] = stored
	return nil
}

// CreateWithCities rejects stops for unknown cities before writing anything,
// the way the city foreign key aborts the transaction in postgres.
func (r *MemoryItineraries) CreateWithCities(_ context.Context, it *models.Itinerary, stops []models.ItineraryCity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range stops {
		if _, ok := r.db.cities[s.CityID]; !ok {
			return ErrNotFound
		}
	}
	it.ID = r.db.id()
	it.CreatedAt, it.UpdatedAt = time.Now(), time.Now()
	stored := *it
	stored.Cities, stored.Activities = nil, nil
	r.db.itineraries[it.ID] = stored
	for i := range stops {
		stops[i].ID = r.db.id()
		stops[i].ItineraryID = it.ID
		stop := stops[i]
		stop.City = models.City{}
		r.db.stops[stop.ID] = stop
	}
	return nil
}

func (r *MemoryItineraries) Update(_ context.Context, it *models.Itinerary) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.itineraries[it.ID]; !ok {
		return ErrNotFound
	}
	it.UpdatedAt = time.Now()
	stored := *it
	stored.Cities, stored.Activities = nil, nil
	r.db.itineraries[it.ID] = stored
	return nil
}

func (r *MemoryItineraries) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.itineraries[id]; !ok {
		return ErrNotFound
	}
	for sid, s := range r.db.stops {
		if s.ItineraryID == id {
			delete(r.db.stops, sid)
		}
	}
	for aid, a := range r.db.scheduled {
		if a.ItineraryID == id {
			delete(r.db.scheduled, aid)
		}
	}
	delete(r.db.itineraries, id)
	return nil
}

func (r *MemoryItineraries) FindByID(_ context.Context, id uint) (*models.Itinerary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	it, ok := r.db.itineraries[id]
	if !ok {
		return nil, ErrNotFound
	}
	it.Cities = r.db.stopsOf(id)
	it.Activities = r.db.scheduleOf(id)
	return &it, nil
}

func (r *MemoryItineraries) ListByUser(_ context.Context, userID uint) ([]models.Itinerary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Itinerary
	for _, it := range r.db.itineraries {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (db *memDB) stopsOf(itineraryID uint) []models.ItineraryCity {
	var out []models.ItineraryCity
	for _, s := range db.stops {
		if s.ItineraryID == itineraryID {
			s.City = db.cities[s.CityID]
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (db *memDB) scheduleOf(itineraryID uint) []models.ItineraryActivity {
	var out []models.ItineraryActivity
	for _, a := range db.scheduled {
		if a.ItineraryID == itineraryID {
			a.Activity = db.activities[a.ActivityID]
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayNumber != out[j].DayNumber {
			return out[i].DayNumber < out[j].DayNumber
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MemoryItineraries) ListCities(_ context.Context, itineraryID uint) ([]models.ItineraryCity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.stopsOf(itineraryID), nil
}

func (r *MemoryItineraries) AddCity(_ context.Context, stop *models.ItineraryCity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stop.ID = r.db.id()
	stored := *stop
	stored.City = models.City{}
	r.db.stops[stop.ID] = stored
	return nil
}

func (r *MemoryItineraries) RemoveCity(_ context.Context, itineraryID, stopID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stops[stopID]
	if !ok || s.ItineraryID != itineraryID {
		return ErrNotFound
	}
	delete(r.db.stops, stopID)
	return nil
}

func (r *MemoryItineraries) ListActivities(_ context.Context, itineraryID uint) ([]models.ItineraryActivity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.scheduleOf(itineraryID), nil
}

func (r *MemoryItineraries) AddActivity(_ context.Context, a *models.ItineraryActivity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.scheduled {
		if existing.ItineraryID == a.ItineraryID && existing.ActivityID == a.ActivityID && existing.DayNumber == a.DayNumber {
			return ErrDuplicateActivity
		}
	}
	a.ID = r.db.id()
	stored := *a
	stored.Activity = models.Activity{}
	r.db.scheduled[a.ID] = stored
	return nil
}

func (r *MemoryItineraries) RemoveActivity(_ context.Context, itineraryID, entryID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.scheduled[entryID]
	if !ok || a.ItineraryID != itineraryID {
		return ErrNotFound
	}
	delete(r.db.scheduled, entryID)
	return nil
}

// --- catalog ---

type MemoryCatalog struct{ db *memDB }

func (r *MemoryCatalog) CreateCountry(_ context.Context, c *models.Country) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.id()
	stored := *c
	stored.Cities = nil
	r.db.countries[c.ID] = stored
	return nil
}

func (r *MemoryCatalog) CreateCity(_ context.Context, c *models.City) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.id()
	stored := *c
	stored.Country = nil
	r.db.cities[c.ID] = stored
	return nil
}

func (db *memDB) withCountry(c models.City) models.City {
	if country, ok := db.countries[c.CountryID]; ok {
		c.Country = &country
	}
	return c
}

func (r *MemoryCatalog) FindCity(_ context.Context, id uint) (*models.City, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.cities[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = r.db.withCountry(c)
	return &c, nil
}

func (r *MemoryCatalog) SearchCities(_ context.Context, prefix string, limit int) ([]models.City, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	prefix = strings.ToLower(prefix)
	var out []models.City
	for _, c := range r.db.cities {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			out = append(out, r.db.withCountry(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPopular != out[j].IsPopular {
			return out[i].IsPopular
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryCatalog) ListCities(_ context.Context) ([]models.City, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.City
	for _, c := range r.db.cities {
		out = append(out, r.db.withCountry(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryCatalog) CreateActivity(_ context.Context, a *models.Activity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.ID = r.db.id()
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	stored := *a
	stored.Destination = nil
	r.db.activities[a.ID] = stored
	return nil
}

func (r *MemoryCatalog) FindActivity(_ context.Context, id uint) (*models.Activity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryCatalog) ListActivities(_ context.Context, cityID uint) ([]models.Activity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Activity
	for _, a := range r.db.activities {
		if a.IsActive && (cityID == 0 || a.CityID == cityID) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryCatalog) CreateTransportation(_ context.Context, t *models.Transportation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t.ID = r.db.id()
	stored := *t
	stored.Origin, stored.Destination = models.City{}, models.City{}
	r.db.transport[t.ID] = stored
	return nil
}

func (r *MemoryCatalog) ListTransportation(_ context.Context) ([]models.Transportation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.transportWhere(func(models.Transportation) bool { return true }), nil
}

func (r *MemoryCatalog) ListDepartures(_ context.Context, cityID uint) ([]models.Transportation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := r.db.transportWhere(func(t models.Transportation) bool { return t.OriginID == cityID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].PriceMin < out[j].PriceMin })
	return out, nil
}

func (db *memDB) transportWhere(keep func(models.Transportation) bool) []models.Transportation {
	var out []models.Transportation
	for _, t := range db.transport {
		if keep(t) {
			t.Origin = db.cities[t.OriginID]
			t.Destination = db.cities[t.DestinationID]
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var (
	_ DestinationRepository = (*MemoryDestinations)(nil)
	_ TripRepository        = (*MemoryTrips)(nil)
	_ ItineraryRepository   = (*MemoryItineraries)(nil)
	_ UserRepository        = (*MemoryUsers)(nil)
	_ CatalogRepository     = (*MemoryCatalog)(nil)

	_ DestinationRepository = (*GormDestinationRepository)(nil)
	_ TripRepository        = (*GormTripRepository)(nil)
	_ ItineraryRepository   = (*GormItineraryRepository)(nil)
	_ UserRepository        = (*GormUserRepository)(nil)
	_ CatalogRepository     = (*GormCatalogRepository)(nil)
)
