package jwt

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	jwt2 "github.com/Miraines/bankr/api-service/internal/domain/auth/jwt"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtUtilImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewJWTUtil")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, customErrors.WrapInternal(errors.New("access and refresh secrets must differ"), "NewJWTUtil")
	}

	return &JwtUtilImpl{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}, nil
}

func (j *JwtUtilImpl) AccessTTL() time.Duration  { return j.accessTTL }
func (j *JwtUtilImpl) RefreshTTL() time.Duration { return j.refreshTTL }

func (j *JwtUtilImpl) GenerateAccessToken(user model.User) (string, time.Time, error) {
	now := j.now()

	claims := jwt2.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
		Email: user.Email,
		Role:  user.Role,
		Type:  jwt2.TypeAccess,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.accessSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken включает jti, поэтому два логина в одну секунду дают разные токены.
func (j *JwtUtilImpl) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	now := j.now()

	claims := jwt2.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
			ID:        uuid.NewString(),
		},
		Type: jwt2.TypeRefresh,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.refreshSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JwtUtilImpl) ValidateAccessToken(raw string) (jwt2.AccessClaims, error) {
	claims := &jwt2.AccessClaims{}
	if err := j.parse(raw, claims, j.accessSecret); err != nil {
		return jwt2.AccessClaims{}, err
	}
	if claims.Type != jwt2.TypeAccess || !claims.Role.Valid() {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}
	return *claims, nil
}

func (j *JwtUtilImpl) ValidateRefreshToken(raw string) (jwt2.RefreshClaims, error) {
	claims := &jwt2.RefreshClaims{}
	if err := j.parse(raw, claims, j.refreshSecret); err != nil {
		return jwt2.RefreshClaims{}, err
	}
	if claims.Type != jwt2.TypeRefresh {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}
	return *claims, nil
}

// parse сводит подпись, срок и формат к одному ErrInvalidToken.
func (j *JwtUtilImpl) parse(raw string, claims jwt.Claims, secret []byte) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return secret, nil
	}, opts...)

	if err != nil || !token.Valid {
		return customErrors.ErrInvalidToken
	}
	return nil
}
