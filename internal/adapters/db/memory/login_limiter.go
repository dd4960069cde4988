package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type attemptWindow struct {
	count   int
	resetAt time.Time
}

// LoginLimiter is the in-process fallback used when redis is not configured.
type LoginLimiter struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, attemptWindow]
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewLoginLimiter(opts repo.LimiterOptions, cacheSize int) *LoginLimiter {
	return &LoginLimiter{
		// запись живёт не дольше окна, LRU ограничивает память
		entries: expirable.NewLRU[string, attemptWindow](cacheSize, nil, opts.Window),
		max:     opts.MaxAttempts,
		window:  opts.Window,
		now:     time.Now,
	}
}

func (l *LoginLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries.Get(key)
	if !ok || !l.now().Before(w.resetAt) {
		return true, nil
	}
	return w.count < l.max, nil
}

func (l *LoginLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries.Get(key)
	if !ok || !now.Before(w.resetAt) {
		w = attemptWindow{resetAt: now.Add(l.window)}
	}
	w.count++
	l.entries.Add(key, w)
	return nil
}

func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries.Remove(key)
	return nil
}
