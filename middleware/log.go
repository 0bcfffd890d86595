package middleware

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Log writes one entry per request. Server errors are logged at error level,
// client errors at warn level.
func Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		stop := time.Since(start)
		latency := int(math.Ceil(float64(stop.Nanoseconds()) / 1000.0))
		statusCode := c.Writer.Status()

		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logger.Fields{
			"requestId":  GetRequestID(c),
			"hostname":   c.Request.Host,
			"statusCode": statusCode,
			"latency":    latency, // microseconds
			"clientIp":   c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"referer":    c.Request.Referer(),
			"dataLength": dataLength,
			"userAgent":  c.Request.UserAgent(),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
			return
		}
		switch {
		case statusCode > 499:
			entry.Error("request failed")
		case statusCode > 399:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
