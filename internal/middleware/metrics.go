package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kampus/orari/internal/service"
)

// probePaths are the health and scrape endpoints, which are not timed.
var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// Metrics records the duration and status of every page and API request,
// labelled by route pattern so /manage/:entity stays one series.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || probePaths[c.Request.URL.Path] {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
