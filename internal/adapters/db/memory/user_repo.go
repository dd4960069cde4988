// Package memory holds map-backed repositories for tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/google/uuid"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
	// onDelete lets sibling repos cascade removals.
	onDelete []func(uuid.UUID)
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *UserRepo) CreateUser(_ context.Context, user model.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	return user.ID, nil
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (r *UserRepo) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, customErrors.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) UpdateUser(_ context.Context, id uuid.UUID, upd repo.UserUpdate) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, customErrors.ErrNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.ClearRefreshToken {
		u.RefreshToken = nil
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return cloneUser(u), nil
}

func (r *UserRepo) SetRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return customErrors.ErrNotFound
	}
	u.RefreshToken = cloneString(token)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *UserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return customErrors.ErrNotFound
	}
	delete(r.users, id)
	hooks := r.onDelete
	r.mu.Unlock()

	for _, h := range hooks {
		h(id)
	}
	return nil
}

// OnDelete registers a cascade hook, mirroring ON DELETE CASCADE.
func (r *UserRepo) OnDelete(fn func(uuid.UUID)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func cloneUser(u model.User) model.User {
	u.RefreshToken = cloneString(u.RefreshToken)
	return u
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
