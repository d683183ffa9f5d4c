package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cloudmgr"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Provider adapter metrics
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Provider adapter calls by outcome (ok, logical, error)",
		},
		[]string{"provider", "type", "operation", "outcome"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Duration of provider adapter calls in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	// Status refresh metrics
	statusRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "resources_total",
			Help:      "Resources visited by list refresh, by result (changed, unchanged, absent)",
		},
		[]string{"provider", "result"},
	)

	// Resource metrics
	resourcesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resource",
			Name:      "total_count",
			Help:      "Number of managed resources by provider and type",
		},
		[]string{"provider", "type"},
	)

	// Lifecycle operations
	lifecycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "actions_total",
			Help:      "Lifecycle actions recorded in the audit log",
		},
		[]string{"action", "status"},
	)

	panicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_recovered_total",
			Help:      "Handler panics turned into 500 responses",
		},
		[]string{"method"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordProviderCall records one adapter call
func RecordProviderCall(provider, resourceType, operation, outcome string, duration time.Duration) {
	providerCallsTotal.WithLabelValues(provider, resourceType, operation, outcome).Inc()
	providerCallDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordRefresh records the result of refreshing one resource
func RecordRefresh(provider, result string) {
	statusRefreshTotal.WithLabelValues(provider, result).Inc()
}

// RecordLifecycle records an audited lifecycle action
func RecordLifecycle(action, status string) {
	lifecycleTotal.WithLabelValues(action, status).Inc()
}

// RecordPanic counts a recovered handler panic
func RecordPanic(method string) {
	panicsRecovered.WithLabelValues(method).Inc()
}

// SetResourcesCount sets the gauge for resources by provider and type
func SetResourcesCount(provider, resourceType string, count float64) {
	resourcesTotal.WithLabelValues(provider, resourceType).Set(count)
}

// ResetResourcesCount clears the resource gauge before a full recount
func ResetResourcesCount() {
	resourcesTotal.Reset()
}
