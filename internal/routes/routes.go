package routes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"travel_planner/internal/controllers"
	"travel_planner/internal/logger"
	"travel_planner/internal/metrics"
	"travel_planner/internal/middleware"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Destinations *controllers.DestinationController
	Trips        *controllers.TripController
	Itineraries  *controllers.ItineraryController
	Catalog      *controllers.CatalogController
	Reports      *controllers.ReportController
}

// Options configures the engine itself.
type Options struct {
	// MediaRoot is served under /media when set.
	MediaRoot string
	// AccessLog receives one line per request when set.
	AccessLog io.Writer
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.AccessLog != nil {
		r.Use(logger.AccessLog(opts.AccessLog))
	}
	r.Use(middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", metrics.Handler())
	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	AuthRoutes(r, ctl.Auth)
	DestinationRoutes(r, ctl.Destinations)
	TripRoutes(r, ctl.Trips)
	ItineraryRoutes(r, ctl.Itineraries)
	CatalogRoutes(r, ctl.Catalog)
	ReportRoutes(r, ctl.Reports)

	return r
}
