package daemon

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ginLogger logs one line per request through logger. Sensor failures are
// logged by the handlers, so 5xx responses only get a warning here.
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handler can change c.Path so:
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		statusCode := c.Writer.Status()
		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency.Milliseconds(),
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": dataLength,
		})

		msg := fmt.Sprintf("%s %s %d (%s)", c.Request.Method, path, statusCode, latency.Round(time.Millisecond))
		switch {
		case statusCode >= http.StatusInternalServerError:
			entry.Warn(msg)
		case statusCode >= http.StatusBadRequest:
			if len(c.Errors) > 0 {
				msg += ": " + c.Errors.ByType(gin.ErrorTypePrivate).String()
			}
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
