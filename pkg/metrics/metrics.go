// Package metrics provides Prometheus instrumentation for Veyra.
//
// It pre-defines the standard HTTP metrics plus the catalog-specific
// counters the admin back office cares about, and gives you helpers to
// register your own custom metrics.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veyra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veyra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "veyra",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ResponseSize tracks the response body size in bytes.
	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veyra",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "path"},
	)
)

// ─────────────────────────────────────────────
// Catalog metrics
// ─────────────────────────────────────────────

var (
	// CatalogMutations counts create/update/delete operations per entity kind.
	CatalogMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veyra",
			Subsystem: "catalog",
			Name:      "mutations_total",
			Help:      "Total catalog mutations.",
		},
		[]string{"kind", "op"}, // kind: "brand"|"category"|"product", op: "create"|"update"|"delete"
	)

	// ThumbnailsGenerated counts thumbnails rendered per target size.
	ThumbnailsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veyra",
			Subsystem: "media",
			Name:      "thumbnails_generated_total",
			Help:      "Total thumbnails generated.",
		},
		[]string{"size"}, // "124x124" | "300x300"
	)

	// UploadBytes tracks accepted upload sizes in bytes.
	UploadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veyra",
			Subsystem: "media",
			Name:      "upload_bytes",
			Help:      "Accepted image upload sizes in bytes.",
			Buckets:   []float64{10_000, 100_000, 500_000, 1_000_000, 2_000_000},
		},
		[]string{"kind"},
	)

	// CacheHits / CacheMisses track cache effectiveness.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "veyra",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits.",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "veyra",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses.",
	})
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by Veyra.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		CatalogMutations,
		ThumbnailsGenerated,
		UploadBytes,
		CacheHits,
		CacheMisses,
	)
}

// Register lets you add your own prometheus.Collector to the Veyra registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware returns an http.Handler middleware that records Prometheus metrics
// for every request: duration histogram, total counter, in-flight gauge, response size.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
			ResponseSize.WithLabelValues(r.Method, path).Observe(float64(rr.size))
		})
	}
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
// Mount it on GET /metrics in your router.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// RecordMutation counts one catalog mutation, e.g. RecordMutation("brand", "create").
func RecordMutation(kind, op string) {
	CatalogMutations.WithLabelValues(kind, op).Inc()
}

// RecordThumbnail counts one generated thumbnail at the given target box.
func RecordThumbnail(w, h int) {
	ThumbnailsGenerated.WithLabelValues(strconv.Itoa(w) + "x" + strconv.Itoa(h)).Inc()
}

// RecordUpload observes an accepted upload size.
func RecordUpload(kind string, bytes int) {
	UploadBytes.WithLabelValues(kind).Observe(float64(bytes))
}
