package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start),
			"client_ip": c.ClientIP(),
		})

		// scrapes and probes are noisy
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.FullPath() == "/metrics" || c.FullPath() == "/health":
			entry.Debug("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}
