package memory

import (
	"context"
	"sort"
	"sync"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/google/uuid"
)

type PlanningRepo[T planning.Record[T]] struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]T
}

func NewPlanningRepo[T planning.Record[T]]() *PlanningRepo[T] {
	return &PlanningRepo[T]{recs: make(map[uuid.UUID]T)}
}

func (r *PlanningRepo[T]) Create(_ context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recs[rec.Key()]; ok {
		return customErrors.ErrAlreadyExists
	}
	r.recs[rec.Key()] = rec
	return nil
}

func (r *PlanningRepo[T]) Get(_ context.Context, userID, id uuid.UUID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recs[id]
	if !ok || rec.Owner() != userID {
		var zero T
		return zero, customErrors.ErrNotFound
	}
	return rec, nil
}

func (r *PlanningRepo[T]) List(_ context.Context, userID uuid.UUID, page pagination.Page) ([]T, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, rec := range r.recs {
		if rec.Owner() == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return window(out, page), int64(len(out)), nil
}

func (r *PlanningRepo[T]) Update(_ context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.recs[rec.Key()]
	if !ok || cur.Owner() != rec.Owner() {
		return customErrors.ErrNotFound
	}
	r.recs[rec.Key()] = rec
	return nil
}

func (r *PlanningRepo[T]) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recs[id]
	if !ok || rec.Owner() != userID {
		return customErrors.ErrNotFound
	}
	delete(r.recs, id)
	return nil
}

// DeleteByUser drops a user's rows; wire it with UserRepo.OnDelete.
func (r *PlanningRepo[T]) DeleteByUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.recs {
		if rec.Owner() == userID {
			delete(r.recs, id)
		}
	}
}
