package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotify-api/pkg/metrics"
)

// MetricsMiddleware records request counts and latency by matched route
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
