package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/savings_loan_app/pkg/metrics"
)

// Metrics creates a Gin middleware that counts every handled request against
// the application's Prometheus registry. The matched route template is used
// rather than the raw path so IDs do not explode label cardinality.
func Metrics(collector *metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		collector.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
