package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	"github.com/Miraines/bankr/api-service/internal/infra/ratelimit"
	"github.com/gin-gonic/gin"
)

// NewHTTPRateLimitPerIP ограничивает RPS по RemoteAddr соединения.
// X-Forwarded-For не учитывается: заголовок подделывается клиентом.
func NewHTTPRateLimitPerIP(
	ctx context.Context,
	limit, burst, cacheSize int,
	ttl time.Duration,
) gin.HandlerFunc {
	buckets := ratelimit.New(ctx, limit, burst, cacheSize, ttl)

	return func(c *gin.Context) {
		if !buckets.Allow(c.Request.RemoteAddr) {
			response.Fail(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
