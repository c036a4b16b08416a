package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mutation outcomes recorded by RecordMutation.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsService owns the Prometheus registry of the server.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	readDuration    *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	loginThrottled  prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
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

	readDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orari_view_read_seconds",
		Help:    "Duration of the parallel reads behind a view",
		Buckets: prometheus.DefBuckets,
	}, []string{"view", "outcome"})

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orari_mutations_total",
		Help: "Record writes by entity, action and outcome",
	}, []string{"entity", "action", "outcome"})

	loginThrottled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orari_login_throttled_total",
		Help: "Login attempts refused by the failed-login throttle",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, readDuration, mutations, loginThrottled, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		readDuration:    readDuration,
		mutations:       mutations,
		loginThrottled:  loginThrottled,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry is exposed for tests that gather the collected values.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRead records how long the reads behind a view took.
func (m *MetricsService) ObserveRead(view string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.readDuration.WithLabelValues(view, outcome(err)).Observe(duration.Seconds())
}

// RecordMutation counts one create, update or delete attempt.
func (m *MetricsService) RecordMutation(entity, action string, err error) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, action, outcome(err)).Inc()
}

// RecordLoginThrottled counts a refused login.
func (m *MetricsService) RecordLoginThrottled() {
	if m == nil {
		return
	}
	m.loginThrottled.Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
