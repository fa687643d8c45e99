package middleware

import (
	"strconv"
	"time"

	"bookai/backend/internal/logger"
	"bookai/backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-Id"

// RequestTrace guarantees a request ID on every inbound request, stores it
// in the request context and response header, then writes the access log
// and HTTP metrics.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.ContextWithID(c.Request.Context(), requestID))
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		// unmatched routes share one label to bound cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())

		logger.For(c.Request.Context()).WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": duration.String(),
		}).Info("completed request")
	}
}
