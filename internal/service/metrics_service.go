package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	eventMutations  *prometheus.CounterVec
	toastsEmitted   *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	mutationCount        uint64
	toastCount           uint64
	exportsCompleted     uint64
	exportsFailed        uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	eventMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_mutations_total",
		Help: "Total event create/update/delete operations",
	}, []string{"operation"})

	toastsEmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "toasts_emitted_total",
		Help: "Total notifications pushed, by severity",
	}, []string{"severity"})

	exportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_total",
		Help: "Total export jobs by terminal status",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, eventMutations, toastsEmitted, exportsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		eventMutations:  eventMutations,
		toastsEmitted:   toastsEmitted,
		exportsTotal:    exportsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordEventMutation counts a create, update or delete.
func (m *MetricsService) RecordEventMutation(operation string) {
	if m == nil {
		return
	}
	m.eventMutations.WithLabelValues(operation).Inc()
	atomic.AddUint64(&m.mutationCount, 1)
}

// RecordToast counts an emitted notification.
func (m *MetricsService) RecordToast(severity string) {
	if m == nil {
		return
	}
	m.toastsEmitted.WithLabelValues(severity).Inc()
	atomic.AddUint64(&m.toastCount, 1)
}

// RecordExport counts a finished export job.
func (m *MetricsService) RecordExport(succeeded bool) {
	if m == nil {
		return
	}
	if succeeded {
		m.exportsTotal.WithLabelValues("completed").Inc()
		atomic.AddUint64(&m.exportsCompleted, 1)
	} else {
		m.exportsTotal.WithLabelValues("failed").Inc()
		atomic.AddUint64(&m.exportsFailed, 1)
	}
}

// Snapshot returns aggregated metrics suitable for the dashboard endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		EventMutations:           atomic.LoadUint64(&m.mutationCount),
		ToastsEmitted:            atomic.LoadUint64(&m.toastCount),
		ExportsCompleted:         atomic.LoadUint64(&m.exportsCompleted),
		ExportsFailed:            atomic.LoadUint64(&m.exportsFailed),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
