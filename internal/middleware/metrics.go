package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/ledger_core/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request counts and latencies by route template.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPFinished(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
