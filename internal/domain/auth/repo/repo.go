package repo

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/google/uuid"
)

// UserUpdate carries the columns to change; nil fields are left untouched.
type UserUpdate struct {
	FirstName         *string
	LastName          *string
	Role              *model.Role
	IsActive          *bool
	ClearRefreshToken bool
}

type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uuid.UUID, error)
	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (model.User, error)
	// SetRefreshToken replaces the stored refresh token in one write; nil clears it.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// LoginLimiter counts failed logins per key inside a fixed window.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type LimiterOptions struct {
	MaxAttempts int
	Window      time.Duration
}
