// Package ratelimit keeps one token bucket per client host for the HTTP and
// gRPC listeners.
package ratelimit

import (
	"context"
	"net"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerIP is safe for concurrent use. Hosts idle for longer than ttl are
// swept; at most size hosts are tracked, the least recently seen is dropped first.
type PerIP struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu      sync.Mutex
	buckets *lru.Cache[string, *bucket]
}

// New starts the sweeper; it stops when ctx is cancelled.
func New(ctx context.Context, rps, burst, size int, ttl time.Duration) *PerIP {
	if size <= 0 {
		size = 1
	}
	buckets, _ := lru.New[string, *bucket](size)
	p := &PerIP{limit: rate.Limit(rps), burst: burst, ttl: ttl, buckets: buckets}
	go p.sweep(ctx)
	return p
}

// Allow takes one token for the host part of addr ("host:port" or a bare host).
func (p *PerIP) Allow(addr string) bool {
	host := Host(addr)

	p.mu.Lock()
	b, ok := p.buckets.Get(host)
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.buckets.Add(host, b)
	}
	b.lastSeen = time.Now()
	p.mu.Unlock()

	return b.limiter.Allow()
}

// Tracked returns the number of hosts currently holding a bucket.
func (p *PerIP) Tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buckets.Len()
}

func (p *PerIP) sweep(ctx context.Context) {
	ticker := time.NewTicker(p.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p.evictIdle(now)
		}
	}
}

func (p *PerIP) evictIdle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, host := range p.buckets.Keys() {
		if b, ok := p.buckets.Peek(host); ok && now.Sub(b.lastSeen) > p.ttl {
			p.buckets.Remove(host)
		}
	}
}

// Host strips the port; IPv6 brackets are dropped too.
func Host(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
