// Package service implements owner-scoped CRUD for the planning records.
// One generic service serves every kind; a Kind supplies the mapping
// from request DTOs to rows.
package service

import (
	"context"
	"errors"
	"time"

	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	"github.com/Miraines/bankr/api-service/internal/app/validation"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultLimit = 20

// Kind describes one planning record type.
type Kind[T planning.Record[T], C, U any] struct {
	// Entity is the activity-log entity name, e.g. "Budget".
	Entity string
	// Build makes a new row from a validated create request.
	Build func(userID uuid.UUID, in C, now time.Time) (T, error)
	// Apply patches a stored row with a validated update request.
	Apply func(rec *T, in U, now time.Time) error
}

type Service[T planning.Record[T], C, U any] interface {
	List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]T, pagination.Meta, error)
	Get(ctx context.Context, userID, id uuid.UUID) (T, error)
	Create(ctx context.Context, userID uuid.UUID, in C) (T, error)
	Update(ctx context.Context, userID, id uuid.UUID, in U) (T, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Entity() string
}

type planningService[T planning.Record[T], C, U any] struct {
	kind     Kind[T, C, U]
	repo     planning.Repo[T]
	activity activitysvc.Service
	v        *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func New[T planning.Record[T], C, U any](
	k Kind[T, C, U],
	r planning.Repo[T],
	act activitysvc.Service,
	v *validator.Validate,
	log *zap.Logger,
) Service[T, C, U] {
	return &planningService[T, C, U]{
		kind:     k,
		repo:     r,
		activity: act,
		v:        v,
		log:      log.With(zap.String("entity", k.Entity)),
		now:      time.Now,
	}
}

func (s *planningService[T, C, U]) Entity() string { return s.kind.Entity }

func (s *planningService[T, C, U]) List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]T, pagination.Meta, error) {
	page = page.Normalize(DefaultLimit)

	recs, total, err := s.repo.List(ctx, userID, page)
	if err != nil {
		return nil, pagination.Meta{}, customErrors.WrapInternal(err, "List"+s.kind.Entity)
	}
	return recs, page.Meta(total), nil
}

func (s *planningService[T, C, U]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	rec, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return rec, s.repoErr(err, "Get")
	}
	return rec, nil
}

func (s *planningService[T, C, U]) Create(ctx context.Context, userID uuid.UUID, in C) (T, error) {
	var zero T
	if err := s.v.Struct(in); err != nil {
		return zero, validation.ToError(err)
	}
	rec, err := s.kind.Build(userID, in, s.now().UTC())
	if err != nil {
		return zero, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return zero, customErrors.WrapInternal(err, "Create"+s.kind.Entity)
	}

	s.log.Debug("record created", zap.String("id", rec.Key().String()), zap.String("user_id", userID.String()))
	s.record(ctx, userID, activity.Created(s.kind.Entity), rec.Key())
	return s.Get(ctx, userID, rec.Key())
}

func (s *planningService[T, C, U]) Update(ctx context.Context, userID, id uuid.UUID, in U) (T, error) {
	var zero T
	if err := s.v.Struct(in); err != nil {
		return zero, validation.ToError(err)
	}
	rec, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return zero, s.repoErr(err, "Update")
	}
	if err := s.kind.Apply(&rec, in, s.now().UTC()); err != nil {
		return zero, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return zero, s.repoErr(err, "Update")
	}

	s.record(ctx, userID, activity.Updated(s.kind.Entity), id)
	return s.Get(ctx, userID, id)
}

func (s *planningService[T, C, U]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.repoErr(err, "Delete")
	}
	s.record(ctx, userID, activity.Deleted(s.kind.Entity), id)
	return nil
}

func (s *planningService[T, C, U]) record(ctx context.Context, userID uuid.UUID, action string, id uuid.UUID) {
	s.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   action,
		Entity:   s.kind.Entity,
		EntityID: id.String(),
	})
}

func (s *planningService[T, C, U]) repoErr(err error, op string) error {
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	return customErrors.WrapInternal(err, op+s.kind.Entity)
}
