package postgres

import (
	"context"

	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresActivityRepo struct {
	db *gorm.DB
}

func NewPostgresActivityRepo(db *gorm.DB) *PostgresActivityRepo {
	return &PostgresActivityRepo{db: db}
}

func (p *PostgresActivityRepo) Create(ctx context.Context, l activity.Log) error {
	if err := p.db.WithContext(ctx).Create(&l).Error; err != nil {
		return customErrors.WrapInternal(err, "CreateActivity")
	}
	return nil
}

func (p *PostgresActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]activity.Log, int64, error) {
	q := p.db.WithContext(ctx).Model(&activity.Log{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "CountActivity")
	}

	var logs []activity.Log
	err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&logs).Error
	if err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListActivity")
	}
	return logs, total, nil
}
