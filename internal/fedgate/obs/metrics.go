package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server metrics plus a few federation-specific counters.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	federationLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedgate_federation_logins_total",
			Help: "Completed federation login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	directoryFetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fedgate_directory_fetch_failures_total",
		Help: "Directory profile fetches that failed and degraded to empty claims.",
	})

	tokenExchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fedgate_token_exchange_duration_seconds",
			Help:    "Upstream token endpoint round-trip latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// Init registers all collectors with the default registry. Call once at startup.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		federationLogins,
		directoryFetchFailures,
		tokenExchangeDuration,
	)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFederationLogin records one completed login attempt. Outcome is one
// of "success", "exchange_failed", or "issuer_failed".
func ObserveFederationLogin(outcome string) {
	federationLogins.WithLabelValues(outcome).Inc()
}

// ObserveDirectoryFetchFailure counts a degraded (claims-less) enrichment.
func ObserveDirectoryFetchFailure() {
	directoryFetchFailures.Inc()
}

// ObserveTokenExchange records one upstream code redemption round trip.
// Outcome is "success" or "failure".
func ObserveTokenExchange(duration time.Duration, outcome string) {
	tokenExchangeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Instrument wraps a handler with RPS/latency/in-flight measurement.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for labelling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
