package middleware

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/infra/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

var errRateLimited = status.Error(codes.ResourceExhausted, "rate limit exceeded")

// NewRateLimitPerIP ограничивает RPS на хост пира. Вызов без peer в контексте
// не пропускается. Очистка бакетов живёт, пока не отменён ctx.
func NewRateLimitPerIP(
	ctx context.Context,
	limit, burst int,
	cacheSize int,
	ttl time.Duration,
) grpc.UnaryServerInterceptor {
	return rateLimitUnary(ratelimit.New(ctx, limit, burst, cacheSize, ttl))
}

func rateLimitUnary(buckets *ratelimit.PerIP) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		p, ok := peer.FromContext(ctx)
		if !ok || p.Addr == nil || !buckets.Allow(p.Addr.String()) {
			return nil, errRateLimited
		}
		return handler(ctx, req)
	}
}
