package service

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultLimit = 50

type Service interface {
	// Record пишет запись аудита; ошибка хранилища только логируется.
	Record(ctx context.Context, e activity.Entry)
	List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]activity.Log, pagination.Meta, error)
}

type activityService struct {
	repo activity.Repo
	log  *zap.Logger
	now  func() time.Time
}

func New(r activity.Repo, log *zap.Logger) Service {
	return &activityService{repo: r, log: log, now: time.Now}
}

func (s *activityService) Record(ctx context.Context, e activity.Entry) {
	entry := activity.Log{
		ID:        uuid.New(),
		UserID:    e.UserID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Details:   e.Details,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Warn("activity log write failed",
			zap.String("action", e.Action),
			zap.String("user_id", e.UserID.String()),
			zap.Error(err),
		)
	}
}

func (s *activityService) List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]activity.Log, pagination.Meta, error) {
	page = page.Normalize(DefaultLimit)

	logs, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, pagination.Meta{}, customErrors.WrapInternal(err, "ListActivity")
	}
	return logs, page.Meta(total), nil
}
