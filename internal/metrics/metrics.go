package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ImageOps counts media operations by op (write, resize, delete) and
	// result (ok, missing, error).
	ImageOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travel_planner",
		Name:      "image_operations_total",
		Help:      "Destination image operations by kind and outcome.",
	}, []string{"op", "result"})

	SlugCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "travel_planner",
		Name:      "slug_collisions_total",
		Help:      "Slug candidates rejected because they were already taken.",
	})

	SlugRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "travel_planner",
		Name:      "slug_insert_retries_total",
		Help:      "Inserts retried after a unique violation on the slug column.",
	})
)

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
