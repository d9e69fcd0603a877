package middleware

import (
	"net/url"
	"time"

	"mediabox/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request at debug level and server errors at warn
// level. Signed blob tokens are redacted from the logged query.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status < 500 && !logger.IsDebugEnabled() {
			return
		}

		path := c.Request.URL.Path
		if query := redactQuery(c.Request.URL.Query()); query != "" {
			path = path + "?" + query
		}

		format := "%s | %d | %s | %s | %s"
		args := []any{c.Request.Method, status, time.Since(start), c.ClientIP(), path}
		if status >= 500 {
			logger.Warnf(format, args...)
			return
		}
		logger.Debugf(format, args...)
	}
}

func redactQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	if values.Has("token") {
		values.Set("token", "REDACTED")
	}
	return values.Encode()
}
