package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
)

type ActivityRepo struct {
	mu   sync.RWMutex
	logs []activity.Log
}

func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

func (r *ActivityRepo) Create(_ context.Context, l activity.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.logs = append(r.logs, l)
	return nil
}

func (r *ActivityRepo) ListByUser(_ context.Context, userID uuid.UUID, page pagination.Page) ([]activity.Log, int64, error) {
	r.mu.RLock()
	var own []activity.Log
	for i := len(r.logs) - 1; i >= 0; i-- {
		if r.logs[i].UserID == userID {
			own = append(own, r.logs[i])
		}
	}
	r.mu.RUnlock()

	// newest first; ties keep reverse insertion order
	sort.SliceStable(own, func(i, j int) bool { return own[i].CreatedAt.After(own[j].CreatedAt) })
	return window(own, page), int64(len(own)), nil
}

// DeleteByUser drops a user's entries; wire it with UserRepo.OnDelete.
func (r *ActivityRepo) DeleteByUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.logs = kept
}

func window[T any](items []T, page pagination.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
