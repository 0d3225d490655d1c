package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"lumijob/pkg/utils"
)

// Limiter is satisfied by *ratelimit.FixedWindowLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit limits requests per client IP. A nil limiter disables it.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		ok, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
