package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"travel_planner/internal/models"
)

// Memory is an in-process stand-in for the database. It enforces the same
// unique constraints and cascades as the schema.
type Memory struct {
	Destinations *MemoryDestinations
	Trips        *MemoryTrips
	Itineraries  *MemoryItineraries
	Users        *MemoryUsers
	Catalog      *MemoryCatalog
}

type memDB struct {
	mu     sync.Mutex
	nextID uint

	destinations map[uint]models.Destination
	trips        map[uint]models.Trip
	itineraries  map[uint]models.Itinerary
	stops        map[uint]models.ItineraryCity
	scheduled    map[uint]models.ItineraryActivity
	users        map[uint]models.User
	countries    map[uint]models.Country
	cities       map[uint]models.City
	activities   map[uint]models.Activity
	transport    map[uint]models.Transportation
}

func NewMemory() *Memory {
	db := &memDB{
		destinations: map[uint]models.Destination{},
		trips:        map[uint]models.Trip{},
		itineraries:  map[uint]models.Itinerary{},
		stops:        map[uint]models.ItineraryCity{},
		scheduled:    map[uint]models.ItineraryActivity{},
		users:        map[uint]models.User{},
		countries:    map[uint]models.Country{},
		cities:       map[uint]models.City{},
		activities:   map[uint]models.Activity{},
		transport:    map[uint]models.Transportation{},
	}
	return &Memory{
		Destinations: &MemoryDestinations{db},
		Trips:        &MemoryTrips{db},
		Itineraries:  &MemoryItineraries{db},
		Users:        &MemoryUsers{db},
		Catalog:      &MemoryCatalog{db},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

// --- destinations ---

type MemoryDestinations struct{ db *memDB }

func (r *MemoryDestinations) slugTaken(slug string, excludeID uint) bool {
	for id, d := range r.db.destinations {
		if d.Slug == slug && id != excludeID {
			return true
		}
	}
	return false
}

func (r *MemoryDestinations) Create(_ context.Context, d *models.Destination) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.slugTaken(d.Slug, 0) {
		return ErrDuplicateSlug
	}
	now := time.Now()
	d.ID = r.db.id()
	d.CreatedAt, d.UpdatedAt = now, now
	r.db.destinations[d.ID] = *d
	return nil
}

func (r *MemoryDestinations) Update(_ context.Context, d *models.Destination) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.destinations[d.ID]; !ok {
		return ErrNotFound
	}
	if r.slugTaken(d.Slug, d.ID) {
		return ErrDuplicateSlug
	}
	d.UpdatedAt = time.Now()
	r.db.destinations[d.ID] = *d
	return nil
}

func (r *MemoryDestinations) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.destinations[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.destinations, id)
	return nil
}

func (r *MemoryDestinations) FindByID(_ context.Context, id uint) (*models.Destination, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.destinations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryDestinations) FindBySlug(_ context.Context, slug string) (*models.Destination, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.destinations {
		if d.Slug == slug {
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryDestinations) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.slugTaken(slug, excludeID), nil
}

func (r *MemoryDestinations) List(_ context.Context, q DestinationQuery) ([]models.Destination, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	var out []models.Destination
	for _, d := range r.db.destinations {
		if search == "" || strings.Contains(strings.ToLower(d.Name), search) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := destinationSortKey(out[i], q.OrderBy), destinationSortKey(out[j], q.OrderBy)
		if a == b {
			return out[i].ID < out[j].ID
		}
		if q.Desc {
			return a > b
		}
		return a < b
	})

	total := int64(len(out))
	if q.Limit > 0 {
		if q.Offset >= len(out) {
			return nil, total, nil
		}
		end := q.Offset + q.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[q.Offset:end]
	}
	return out, total, nil
}

func destinationSortKey(d models.Destination, column string) string {
	switch column {
	case "city":
		return d.City
	case "country":
		return d.Country
	case "arrival_date":
		return models.FormatDate(d.ArrivalDate)
	case "created_at":
		return d.CreatedAt.Format(time.RFC3339Nano)
	default:
		return d.Name
	}
}

func (r *MemoryDestinations) ListByTrip(_ context.Context, tripID uint) ([]models.Destination, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.destinationsOf(tripID), nil
}

func (db *memDB) destinationsOf(tripID uint) []models.Destination {
	var out []models.Destination
	for _, d := range db.destinations {
		if d.TripID != nil && *d.TripID == tripID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryDestinations) ListWithImages(_ context.Context) ([]models.Destination, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Destination
	for _, d := range r.db.destinations {
		if d.ImagePath != "" {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- trips ---

type MemoryTrips struct{ db *memDB }

func (r *MemoryTrips) Create(_ context.Context, t *models.Trip) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	t.ID = r.db.id()
	t.CreatedAt, t.UpdatedAt = now, now
	stored := *t
	stored.Destinations = nil
	r.db.trips[t.ID] = stored
	return nil
}

func (r *MemoryTrips) Update(_ context.Context, t *models.Trip) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.trips[t.ID]; !ok {
		return ErrNotFound
	}
	t.UpdatedAt = time.Now()
	stored := *t
	stored.Destinations = nil
	r.db.trips[t.ID] = stored
	return nil
}

func (r *MemoryTrips) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.trips[id]; !ok {
		return ErrNotFound
	}
	for did, d := range r.db.destinations {
		if d.TripID != nil && *d.TripID == id {
			delete(r.db.destinations, did)
		}
	}
	delete(r.db.trips, id)
	return nil
}

func (r *MemoryTrips) FindByID(_ context.Context, id uint) (*models.Trip, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Destinations = r.db.destinationsOf(id)
	return &t, nil
}

func (r *MemoryTrips) ListByUser(_ context.Context, userID uint) ([]models.Trip, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Trip
	for _, t := range r.db.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryTrips) ListAll(_ context.Context) ([]models.Trip, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Trip
	for _, t := range r.db.trips {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- users ---

type MemoryUsers struct{ db *memDB }

func (r *MemoryUsers) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicateUser
		}
	}
	u.ID = r.db.id()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.db.users[u.ID] = *u
	return nil
}

func (r *MemoryUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
