package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFree    Role = "FREE"
	RolePremium Role = "PREMIUM"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFree, RolePremium, RoleAdmin:
		return true
	}
	return false
}

// HasPremium reports whether the role unlocks premium features.
func (r Role) HasPremium() bool {
	return r == RolePremium || r == RoleAdmin
}

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	FirstName     string    `gorm:"size:100"`
	LastName      string    `gorm:"size:100"`
	Role          Role      `gorm:"size:16;not null;default:FREE"`
	IsActive      bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`
	RefreshToken  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string { return "users" }

// Principal is the authenticated caller extracted from a verified access token.
type Principal struct {
	ID        uuid.UUID
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// Session is the result of a successful register or login.
type Session struct {
	User User
	TokenPair
}

type AccessGrant struct {
	AccessToken string
	AccessTTL   time.Duration
}
