package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// quietPaths — пробы и сбор метрик, их пишем на Debug.
var quietPaths = map[string]bool{
	"/liveness":  true,
	"/readyness": true,
	"/metrics":   true,
}

// RequestLogger логирует каждый запрос: метод, путь, статус, длительность, client IP.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		clientIP := c.ClientIP()
		method := c.Request.Method

		c.Next()

		level := slog.LevelInfo
		if quietPaths[path] {
			level = slog.LevelDebug
		}
		if raw != "" {
			path = path + "?" + raw
		}
		log.Log(c.Request.Context(), level, "request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"ip", clientIP,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
