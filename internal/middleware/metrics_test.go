package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kampus/orari/internal/service"
)

func TestMetricsLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.POST("/manage/:entity", func(c *gin.Context) { c.Status(http.StatusSeeOther) })
	r.GET("/ready", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, target := range []string{"/manage/courses", "/manage/rooms"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, target, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="POST",path="/manage/:entity",status="303"} 2`)
	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, `path="/ready"`)
	assert.NotContains(t, body, `path="/manage/courses"`)
}
