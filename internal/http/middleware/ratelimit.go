package middleware

import (
	"net/http"
	"strconv"

	"catalog/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit enforces per-client-IP admission on every request. When the
// coordination store is unreachable the request is admitted without
// headers: availability wins over enforcement, and the choice is made
// here, in one visible place.
func RateLimit(limiter services.RateLimiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Admit(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limit store unavailable, admitting request",
				zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Try again later.",
			})
			return
		}

		c.Next()
	}
}
