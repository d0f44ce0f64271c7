package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds every Prometheus collector exposed by the API.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	docOperationsTotal   *prometheus.CounterVec
	docOperationDuration *prometheus.HistogramVec
	openDocumentsTotal   prometheus.Gauge

	authRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the API's Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caretext_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caretext_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "caretext_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		docOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caretext_document_operations_total",
				Help: "Total number of document operations",
			},
			[]string{"operation", "status"},
		),
		docOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caretext_document_operation_duration_seconds",
				Help:    "Document operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		openDocumentsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "caretext_open_documents_total",
				Help: "Total number of currently open documents",
			},
		),
		authRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caretext_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDocOperation records a document-level operation outcome.
func (m *Metrics) RecordDocOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.docOperationsTotal.WithLabelValues(operation, status).Inc()
	m.docOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetOpenDocuments updates the open-documents gauge.
func (m *Metrics) SetOpenDocuments(n int) {
	m.openDocumentsTotal.Set(float64(n))
}

// RecordAuthRequest records an authentication attempt outcome.
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler wraps handler with request-count, in-flight, and
// duration metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware wraps an auth middleware with pass/fail
// metrics recording.
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasKey := r.Header.Get("X-API-Key") != ""
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)
			if hasKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}
