package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	pagesClassified *prometheus.CounterVec
	ordersConfirmed prometheus.Counter
	stagedSwept     prometheus.Counter
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

	pagesClassified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_classified_total",
		Help: "Pages classified by outcome",
	}, []string{"result"})

	ordersConfirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_confirmed_total",
		Help: "Orders confirmed and recorded",
	})

	stagedSwept := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staged_files_swept_total",
		Help: "Staged files reclaimed by the retention sweeper",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, pagesClassified, ordersConfirmed, stagedSwept, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		pagesClassified: pagesClassified,
		ordersConfirmed: ordersConfirmed,
		stagedSwept:     stagedSwept,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePageClassified counts one classified page by outcome.
func (m *MetricsService) ObservePageClassified(color bool) {
	if m == nil {
		return
	}
	result := "grayscale"
	if color {
		result = "color"
	}
	m.pagesClassified.WithLabelValues(result).Inc()
}

// ObserveOrderConfirmed counts one confirmed order.
func (m *MetricsService) ObserveOrderConfirmed() {
	if m == nil {
		return
	}
	m.ordersConfirmed.Inc()
}

// ObserveStagedSwept counts reclaimed staged files.
func (m *MetricsService) ObserveStagedSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.stagedSwept.Add(float64(n))
}
