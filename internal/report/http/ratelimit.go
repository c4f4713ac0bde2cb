package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ExportRateLimit throttles the PDF endpoints; rendering is CPU-bound and
// a runaway client should not starve the rest of the API.
func ExportRateLimit(perMinute int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many export requests"})
			return
		}
		c.Next()
	}
}
