package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	"github.com/Miraines/bankr/api-service/internal/app/auth/password"
	"github.com/Miraines/bankr/api-service/internal/app/validation"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/jwt"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	repo "github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	lg "github.com/Miraines/bankr/api-service/internal/infra/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authService struct {
	userRepo  repo.UserRepo
	limiter   repo.LoginLimiter
	jwtUtil   jwt.JWTUtil
	hasher    password.Hasher
	activity  activitysvc.Service
	v         *validator.Validate
	log       *zap.Logger
	dummyHash string
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.Session, error)
	Login(context.Context, dto.LoginDTO) (model.Session, error)
	Refresh(context.Context, dto.RefreshDTO) (model.AccessGrant, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	// Authenticate verifies an access token without touching the store.
	Authenticate(ctx context.Context, accessToken string) (model.Principal, error)
}

// New wires the session manager. limiter may be nil to disable login throttling.
func New(
	ur repo.UserRepo,
	limiter repo.LoginLimiter,
	jm jwt.JWTUtil,
	h password.Hasher,
	act activitysvc.Service,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	// хэш-заглушка для выравнивания времени ответа, когда пользователя нет
	dummy, err := h.Hash(context.Background(), uuid.NewString())
	if err != nil {
		log.Warn("dummy hash unavailable", zap.Error(err))
	}
	return &authService{
		userRepo: ur, limiter: limiter, jwtUtil: jm, hasher: h,
		activity: act, v: v, log: log, dummyHash: dummy,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, validation.ToError(err)
	}
	email := normalizeEmail(in.Email)

	_, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return model.Session{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.Session{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := a.hasher.Hash(ctx, in.Password)
	if err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "Register")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         model.RoleFree,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	pair, err := a.issueTokens(user)
	if err != nil {
		return model.Session{}, err
	}
	// refresh-токен пишется той же вставкой, что и сам пользователь
	user.RefreshToken = &pair.RefreshToken

	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.Session{}, customErrors.ErrAlreadyExists
		}
		return model.Session{}, customErrors.WrapInternal(err, "Register")
	}

	a.activity.Record(ctx, activity.Entry{
		UserID:   user.ID,
		Action:   activity.ActionUserRegistered,
		Entity:   activity.EntityUser,
		EntityID: user.ID.String(),
	})
	a.log.Info("user registered", lg.Email(email), zap.String("user_id", user.ID.String()))

	user.RefreshToken = nil
	return model.Session{User: user, TokenPair: pair}, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.Session, error) {
	if err := a.v.Struct(in); err != nil {
		return model.Session{}, validation.ToError(err)
	}
	email := normalizeEmail(in.Email)
	key := throttleKey(email, in.ClientIP)

	if a.limiter != nil {
		ok, err := a.limiter.Allow(ctx, key)
		if err != nil {
			// лимитер недоступен: не блокируем вход
			a.log.Warn("login limiter unavailable", zap.Error(err))
		} else if !ok {
			return model.Session{}, customErrors.ErrTooManyAttempts
		}
	}

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		a.hasher.Verify(ctx, in.Password, a.dummyHash)
		return model.Session{}, a.loginFailed(ctx, email, key)
	case err != nil:
		return model.Session{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(ctx, in.Password, user.PasswordHash) || !user.IsActive {
		return model.Session{}, a.loginFailed(ctx, email, key)
	}

	pair, err := a.issueTokens(user)
	if err != nil {
		return model.Session{}, err
	}
	if err = a.userRepo.SetRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "Login")
	}

	if a.limiter != nil {
		if err := a.limiter.Reset(ctx, key); err != nil {
			a.log.Warn("login limiter reset failed", zap.Error(err))
		}
	}

	a.activity.Record(ctx, activity.Entry{
		UserID:   user.ID,
		Action:   activity.ActionUserLoggedIn,
		Entity:   activity.EntityUser,
		EntityID: user.ID.String(),
	})

	user.RefreshToken = nil
	return model.Session{User: user, TokenPair: pair}, nil
}

// throttleKey ведёт счётчик неудач на пару (адрес, IP клиента), чтобы чужой
// IP не мог заблокировать вход владельцу адреса.
func throttleKey(email, ip string) string {
	if ip == "" {
		return email
	}
	return email + "|" + ip
}

func (a *authService) loginFailed(ctx context.Context, email, key string) error {
	a.log.Info("login failed", lg.Email(email))
	if a.limiter != nil {
		if err := a.limiter.Fail(ctx, key); err != nil {
			a.log.Warn("login limiter unavailable", zap.Error(err))
		}
	}
	return customErrors.ErrInvalidCredentials
}

// Refresh выдаёт только новый access-токен; сохранённый refresh-токен не ротируется.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.AccessGrant, error) {
	raw := strings.TrimSpace(in.RefreshToken)
	if raw == "" {
		return model.AccessGrant{}, customErrors.ErrMissingRefreshToken
	}

	claims, err := a.jwtUtil.ValidateRefreshToken(raw)
	if err != nil {
		return model.AccessGrant{}, customErrors.ErrInvalidRefreshToken
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AccessGrant{}, customErrors.ErrInvalidRefreshToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.AccessGrant{}, customErrors.ErrInvalidRefreshToken
	case err != nil:
		return model.AccessGrant{}, customErrors.WrapInternal(err, "Refresh")
	}

	if !user.IsActive || user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(raw)) != 1 {
		return model.AccessGrant{}, customErrors.ErrInvalidRefreshToken
	}

	at, atExp, err := a.jwtUtil.GenerateAccessToken(user)
	if err != nil {
		return model.AccessGrant{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	return model.AccessGrant{AccessToken: at, AccessTTL: time.Until(atExp)}, nil
}

func (a *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.userRepo.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrUserNotFound
		}
		return customErrors.WrapInternal(err, "Logout")
	}

	a.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   activity.ActionUserLoggedOut,
		Entity:   activity.EntityUser,
		EntityID: userID.String(),
	})
	return nil
}

func (a *authService) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrUserNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Me")
	}
	user.RefreshToken = nil
	return user, nil
}

func (a *authService) Authenticate(_ context.Context, accessToken string) (model.Principal, error) {
	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		return model.Principal{}, customErrors.ErrInvalidToken
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, customErrors.ErrInvalidToken
	}

	p := model.Principal{ID: uid, Email: claims.Email, Role: claims.Role}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func (a *authService) issueTokens(user model.User) (model.TokenPair, error) {
	at, atExp, err := a.jwtUtil.GenerateAccessToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, err := a.jwtUtil.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
