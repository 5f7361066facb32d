package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medquery_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medquery_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medquery_translations_total",
			Help: "Natural-language to SQL translations by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)
	translationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medquery_translation_duration_seconds",
			Help:    "Latency of the model call.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)
	executionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medquery_query_executions_total",
			Help: "Generated SQL executions by outcome.",
		},
		[]string{"outcome"},
	)
	resultRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medquery_query_result_rows",
			Help:    "Rows returned per successful execution.",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)
	flaggedSQLTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medquery_flagged_sql_total",
			Help: "Generated statements that failed the read-only check.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		translationsTotal,
		translationDurationSeconds,
		executionsTotal,
		resultRows,
		flaggedSQLTotal,
	)
}

func ObserveTranslation(provider string, err error, elapsed time.Duration) {
	translationsTotal.WithLabelValues(provider, outcome(err)).Inc()
	translationDurationSeconds.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func ObserveExecution(rows int, err error) {
	executionsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		resultRows.Observe(float64(rows))
	}
}

func IncrementFlaggedSQL() {
	flaggedSQLTotal.Inc()
}

// MetricsMiddleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := strconv.Itoa(recorder.status)
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
