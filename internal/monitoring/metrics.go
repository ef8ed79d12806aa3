package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	GoalsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fittrack_goals_created_total",
		Help: "Goals created",
	})

	GoalsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fittrack_goals_deleted_total",
		Help: "Goals deleted",
	})

	ProfileUpserts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fittrack_profile_upserts_total",
		Help: "Profile submissions stored",
	})

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fittrack_validation_failures_total",
			Help: "Rejected submissions by form",
		},
		[]string{"form"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			GoalsCreated,
			GoalsDeleted,
			ProfileUpserts,
			ValidationFailures,
		)
	})
}

func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}

func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
