// Package metrics registra los colectores Prometheus del servicio y expone /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generaciones
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defgen_generations_total",
			Help: "Generations by provider and result",
		},
		[]string{"provider", "status"}, // status: succeeded|failed
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "defgen_generation_duration_seconds",
			Help:    "Wall-clock time of the provider call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 9), // 1s..256s
		},
		[]string{"provider"},
	)

	// Validación de la salida
	ValidationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defgen_validation_runs_total",
			Help: "Output validation runs by result",
		},
		[]string{"result"}, // pass|fail
	)

	// Historial y archivo
	SideEffectErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defgen_side_effect_errors_total",
			Help: "Best-effort side effects that failed",
		},
		[]string{"component"}, // history|archive
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "defgen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "defgen_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(
		Generations,
		GenerationDurationSeconds,
		ValidationRuns,
		SideEffectErrors,
		HTTPRequests,
		HTTPRequestDurationSeconds,
	)
}

// Handler expone el registro por defecto.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Generaciones
func ObserveGeneration(provider, status string, d time.Duration) {
	Generations.WithLabelValues(provider, status).Inc()
	GenerationDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// Validación
func IncValidationRun(passed bool) {
	result := "fail"
	if passed {
		result = "pass"
	}
	ValidationRuns.WithLabelValues(result).Inc()
}

// Historial / archivo
func IncSideEffectError(component string) {
	SideEffectErrors.WithLabelValues(component).Inc()
}

// HTTP
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}
