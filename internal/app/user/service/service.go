package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	"github.com/Miraines/bankr/api-service/internal/app/auth/password"
	"github.com/Miraines/bankr/api-service/internal/app/validation"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	repo "github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	lg "github.com/Miraines/bankr/api-service/internal/infra/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileDTO) (model.User, error)
	AdminUpdate(ctx context.Context, adminID, userID uuid.UUID, in dto.AdminUpdateUserDTO) (model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	// EnsureAdmin creates an ADMIN account unless the e-mail is already taken.
	EnsureAdmin(ctx context.Context, email, plaintext string) error
}

type userService struct {
	users    repo.UserRepo
	hasher   password.Hasher
	activity activitysvc.Service
	v        *validator.Validate
	log      *zap.Logger
}

func New(ur repo.UserRepo, h password.Hasher, act activitysvc.Service, v *validator.Validate, log *zap.Logger) Service {
	return &userService{users: ur, hasher: h, activity: act, v: v, log: log}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListUsers")
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, validation.ToError(err)
	}

	upd := repo.UserUpdate{FirstName: trimmed(in.FirstName), LastName: trimmed(in.LastName)}
	user, err := s.users.UpdateUser(ctx, userID, upd)
	if err != nil {
		return model.User{}, notFoundAsUser(err, "UpdateProfile")
	}

	s.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   activity.ActionUserProfileUpdated,
		Entity:   activity.EntityUser,
		EntityID: userID.String(),
	})
	return user, nil
}

func (s *userService) AdminUpdate(ctx context.Context, adminID, userID uuid.UUID, in dto.AdminUpdateUserDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, validation.ToError(err)
	}
	if in.Role == nil && in.IsActive == nil {
		return model.User{}, customErrors.NewValidation(customErrors.FieldError{Path: "role", Message: "Nothing to update"})
	}
	if adminID == userID {
		// админ не может разжаловать или заблокировать сам себя
		return model.User{}, customErrors.ErrForbidden
	}

	var upd repo.UserUpdate
	var changes []string
	if in.Role != nil {
		role := model.Role(*in.Role)
		upd.Role = &role
		changes = append(changes, "role="+*in.Role)
	}
	if in.IsActive != nil {
		upd.IsActive = in.IsActive
		// деактивация сразу отзывает refresh-токен
		upd.ClearRefreshToken = !*in.IsActive
		changes = append(changes, fmt.Sprintf("isActive=%t", *in.IsActive))
	}

	user, err := s.users.UpdateUser(ctx, userID, upd)
	if err != nil {
		return model.User{}, notFoundAsUser(err, "AdminUpdate")
	}

	s.activity.Record(ctx, activity.Entry{
		UserID:   adminID,
		Action:   activity.ActionUserUpdatedByAdmin,
		Entity:   activity.EntityUser,
		EntityID: userID.String(),
		Details:  strings.Join(changes, ", "),
	})
	user.RefreshToken = nil
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return notFoundAsUser(err, "DeleteUser")
	}
	s.log.Info("account deleted", zap.String("user_id", userID.String()))
	return nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, plaintext string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, customErrors.ErrNotFound):
		return customErrors.WrapInternal(err, "EnsureAdmin")
	}

	if !validation.StrongPassword(plaintext) {
		return customErrors.NewInvalidArgument("first admin password is too weak")
	}
	if !validation.PasswordFits(plaintext) {
		return customErrors.NewInvalidArgument("first admin password exceeds 72 bytes")
	}
	hash, err := s.hasher.Hash(ctx, plaintext)
	if err != nil {
		return customErrors.WrapInternal(err, "EnsureAdmin")
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:            uuid.New(),
		Email:         email,
		PasswordHash:  hash,
		FirstName:     "Admin",
		Role:          model.RoleAdmin,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.users.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return nil
		}
		return customErrors.WrapInternal(err, "EnsureAdmin")
	}
	s.log.Info("first admin created", lg.Email(email))
	return nil
}

func notFoundAsUser(err error, op string) error {
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrUserNotFound
	}
	return customErrors.WrapInternal(err, op)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
