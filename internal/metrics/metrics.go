// Package metrics provides Prometheus instrumentation for the
// reduction and settlement cores.
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

var (
	// RunsTotal counts completed runs, partitioned by kind and
	// terminal status.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qumo_runs_total",
		Help: "Total number of reduction/settlement runs completed",
	}, []string{"kind", "status"})

	// RunLatency is the end-to-end latency of a run, from pending to
	// terminal status.
	RunLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qumo_run_latency_seconds",
		Help:    "Run latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// ActiveRuns tracks the number of runs currently in the running state.
	ActiveRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qumo_active_runs",
		Help: "Number of runs currently running",
	})

	// WebSocketClients tracks connected run-progress WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qumo_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qumo_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qumo_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})

	// ConstraintsRejected counts constraints that forced ModelInfeasible
	// during boxify or equation conversion.
	ConstraintsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qumo_constraints_rejected_total",
		Help: "Constraints that collapsed an envelope to Infeasible",
	})

	// SolverCalls tracks HiGHS solver invocations per terminal status.
	SolverCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qumo_solver_calls_total",
		Help: "Solver backend invocations by termination status",
	}, []string{"status"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the route pattern for path label to avoid high cardinality.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
