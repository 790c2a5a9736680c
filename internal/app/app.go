// Package app wires repositories, services and controllers together for the
// server and the manage CLI.
package app

import (
	"gorm.io/gorm"

	"travel_planner/internal/config"
	"travel_planner/internal/controllers"
	"travel_planner/internal/media"
	"travel_planner/internal/repositories"
	"travel_planner/internal/routes"
	"travel_planner/internal/services"
)

type Repositories struct {
	Destinations repositories.DestinationRepository
	Trips        repositories.TripRepository
	Itineraries  repositories.ItineraryRepository
	Users        repositories.UserRepository
	Catalog      repositories.CatalogRepository
}

func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Destinations: repositories.NewDestinationRepository(db),
		Trips:        repositories.NewTripRepository(db),
		Itineraries:  repositories.NewItineraryRepository(db),
		Users:        repositories.NewUserRepository(db),
		Catalog:      repositories.NewCatalogRepository(db),
	}
}

func MemoryRepositories(m *repositories.Memory) Repositories {
	return Repositories{
		Destinations: m.Destinations,
		Trips:        m.Trips,
		Itineraries:  m.Itineraries,
		Users:        m.Users,
		Catalog:      m.Catalog,
	}
}

// ImagesFor builds the image manager over MEDIA_ROOT.
func ImagesFor(s *config.Settings) *media.Images {
	return media.NewImages(media.NewDiskStore(s.MediaRoot), media.Options{
		MaxWidth:  s.ImageMaxWidth,
		MaxHeight: s.ImageMaxHeight,
		Quality:   s.ImageQuality,
		MaxPixels: s.ImageMaxPixels,
		URLPrefix: "/media/",
	})
}

type Services struct {
	Auth         *services.AuthService
	Destinations *services.DestinationService
	Trips        *services.TripService
	Itineraries  *services.ItineraryService
	Catalog      *services.CatalogService
	Reports      *services.ReportService
}

func NewServices(r Repositories, images *media.Images) *Services {
	return &Services{
		Auth:         services.NewAuthService(r.Users),
		Destinations: services.NewDestinationService(r.Destinations, r.Trips, images),
		Trips:        services.NewTripService(r.Trips, r.Destinations, images),
		Itineraries:  services.NewItineraryService(r.Itineraries, r.Catalog),
		Catalog:      services.NewCatalogService(r.Catalog, r.Destinations),
		Reports:      services.NewReportService(r.Trips, r.Catalog),
	}
}

func (s *Services) Controllers() routes.Controllers {
	destinations := controllers.NewDestinationController(s.Destinations)
	trips := controllers.NewTripController(s.Trips, destinations)
	return routes.Controllers{
		Auth:         controllers.NewAuthController(s.Auth),
		Destinations: destinations,
		Trips:        trips,
		Itineraries:  controllers.NewItineraryController(s.Itineraries),
		Catalog:      controllers.NewCatalogController(s.Catalog),
		Reports:      controllers.NewReportController(s.Reports, trips),
	}
}
