package obs

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fallback reasons recorded on supplier_fallbacks_total.
const (
	ReasonDisabled = "disabled"
	ReasonError    = "error"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	searches          prometheus.Counter
	cacheHits         prometheus.Counter
	rateLimitDrops    prometheus.Counter
	supplierFallbacks *prometheus.CounterVec
	mappingFailures   *prometheus.CounterVec
	supplierLatency   *prometheus.HistogramVec
	searchDuration    prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotel_searches_total",
			Help: "Total number of aggregated searches",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotel_cache_hits_total",
			Help: "Number of searches served from cache",
		}),
		rateLimitDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotel_ratelimit_drops_total",
			Help: "Requests rejected by the rate limiter",
		}),
		supplierFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_fallbacks_total",
			Help: "Supplier calls answered from the local dataset",
		}, []string{"supplier", "reason"}),
		mappingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "supplier_mapping_failures_total",
			Help: "Supplier payloads dropped because they could not be mapped",
		}, []string{"supplier"}),
		supplierLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supplier_latency_seconds",
			Help:    "Latency of supplier fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"supplier"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hotel_search_duration_seconds",
			Help:    "Duration of uncached aggregations",
			Buckets: prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.searches,
		m.cacheHits,
		m.rateLimitDrops,
		m.supplierFallbacks,
		m.mappingFailures,
		m.supplierLatency,
		m.searchDuration,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncSearches() {
	m.searches.Inc()
}

func (m *Metrics) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *Metrics) IncRateLimitDrops() {
	m.rateLimitDrops.Inc()
}

func (m *Metrics) IncSupplierFallback(supplier, reason string) {
	m.supplierFallbacks.WithLabelValues(supplier, reason).Inc()
}

func (m *Metrics) IncMappingFailure(supplier string) {
	m.mappingFailures.WithLabelValues(supplier).Inc()
}

func (m *Metrics) ObserveSupplierLatency(supplier string, d time.Duration) {
	m.supplierLatency.WithLabelValues(supplier).Observe(d.Seconds())
}

func (m *Metrics) ObserveSearchDuration(d time.Duration) {
	m.searchDuration.Observe(d.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latencies by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, route, strconv.Itoa(status)}

		m.httpRequests.WithLabelValues(labels...).Inc()
		m.httpDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}
