package jwt

import (
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type AccessClaims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Type  string     `json:"type"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

type JWTUtil interface {
	GenerateAccessToken(user model.User) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(raw string) (AccessClaims, error)
	ValidateRefreshToken(raw string) (RefreshClaims, error)
}
