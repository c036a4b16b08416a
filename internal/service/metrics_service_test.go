package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveRead("dashboard", nil, time.Millisecond)
	m.RecordMutation("room", actionCreate, nil)
	m.RecordLoginThrottled()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/schedules", 200, 5*time.Millisecond)
	m.RecordMutation("room", actionDelete, errors.New("boom"))
	m.RecordLoginThrottled()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/schedules", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("room", actionDelete, OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginThrottled))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "orari_login_throttled_total 1")
}
