package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresPlanningRepo stores one planning table; T picks the table via TableName.
type PostgresPlanningRepo[T planning.Record[T]] struct {
	db *gorm.DB
}

func NewPostgresPlanningRepo[T planning.Record[T]](db *gorm.DB) *PostgresPlanningRepo[T] {
	return &PostgresPlanningRepo[T]{db: db}
}

func (p *PostgresPlanningRepo[T]) Create(ctx context.Context, rec T) error {
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return customErrors.WrapInternal(err, "CreatePlanning")
	}
	return nil
}

func (p *PostgresPlanningRepo[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	var rec T
	res := p.owned(ctx, userID).Where("id = ?", id).First(&rec)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		var zero T
		return zero, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		var zero T
		return zero, customErrors.WrapInternal(err, "GetPlanning")
	}
	return rec, nil
}

func (p *PostgresPlanningRepo[T]) List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]T, int64, error) {
	var total int64
	if err := p.owned(ctx, userID).Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "CountPlanning")
	}

	var zero T
	recs := []T{}
	err := p.owned(ctx, userID).Order(zero.ListOrder()).Offset(page.Offset()).Limit(page.Limit).Find(&recs).Error
	if err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListPlanning")
	}
	return recs, total, nil
}

// Update переписывает все колонки, кроме ключа, владельца и created_at.
func (p *PostgresPlanningRepo[T]) Update(ctx context.Context, rec T) error {
	res := p.owned(ctx, rec.Owner()).Where("id = ?", rec.Key()).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(&rec)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdatePlanning")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresPlanningRepo[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	var zero T
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&zero)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeletePlanning")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresPlanningRepo[T]) owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	var zero T
	return p.db.WithContext(ctx).Model(&zero).Where("user_id = ?", userID)
}
