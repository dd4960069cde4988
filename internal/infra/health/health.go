// Package health aggregates dependency checks for /health and the gRPC health service.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type Checker func(ctx context.Context) error

type Report struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (r Report) Healthy() bool { return r.Status == StatusOK }

type Probe struct {
	timeout time.Duration
	names   []string
	checks  []Checker
}

func New(timeout time.Duration) *Probe {
	return &Probe{timeout: timeout}
}

func (p *Probe) Add(name string, c Checker) *Probe {
	p.names = append(p.names, name)
	p.checks = append(p.checks, c)
	return p
}

// Check runs every checker in parallel; a failing checker degrades the report but never errors.
func (p *Probe) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		rep = Report{Status: StatusOK, Checks: make(map[string]string, len(p.checks)), Timestamp: time.Now().UTC()}
	)
	var g errgroup.Group
	for i, c := range p.checks {
		c := c
		name := p.names[i]
		g.Go(func() error {
			res := StatusOK
			if err := c(ctx); err != nil {
				res = err.Error()
			}
			mu.Lock()
			rep.Checks[name] = res
			if res != StatusOK {
				rep.Status = StatusDegraded
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return rep
}

func DB(db *gorm.DB) Checker {
	return func(ctx context.Context) error {
		return db.WithContext(ctx).Exec("SELECT 1").Error
	}
}

func Redis(c *redis.Client) Checker {
	return func(ctx context.Context) error {
		return c.Ping(ctx).Err()
	}
}
