package server

import (
	"strings"
	"time"

	"peer-bidding/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing.
// Long-lived streams are logged once when they end.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}
	if strings.HasPrefix(c.Request.URL.Path, "/swarm") || strings.HasPrefix(c.Request.URL.Path, "/events") {
		utils.Debug("HTTP Stream", fields)
		return
	}
	utils.Info("HTTP Request", fields)
}
