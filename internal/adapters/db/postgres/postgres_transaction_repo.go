package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresTransactionRepo struct {
	db *gorm.DB
}

func NewPostgresTransactionRepo(db *gorm.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{db: db}
}

func (p *PostgresTransactionRepo) Create(ctx context.Context, tx transaction.Transaction) error {
	if err := p.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return customErrors.WrapInternal(err, "CreateTransaction")
	}
	return nil
}

func (p *PostgresTransactionRepo) Get(ctx context.Context, userID, id uuid.UUID) (transaction.Transaction, error) {
	var tx transaction.Transaction
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tx)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return transaction.Transaction{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return transaction.Transaction{}, customErrors.WrapInternal(err, "GetTransaction")
	}
	return tx, nil
}

func (p *PostgresTransactionRepo) List(ctx context.Context, f transaction.Filter, page pagination.Page) ([]transaction.Transaction, int64, error) {
	var total int64
	if err := p.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "CountTransactions")
	}

	var txs []transaction.Transaction
	err := p.filtered(ctx, f).Order("date DESC").Offset(page.Offset()).Limit(page.Limit).Find(&txs).Error
	if err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListTransactions")
	}
	return txs, total, nil
}

func (p *PostgresTransactionRepo) All(ctx context.Context, f transaction.Filter) ([]transaction.Transaction, error) {
	var txs []transaction.Transaction
	if err := p.filtered(ctx, f).Order("date DESC").Find(&txs).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "AllTransactions")
	}
	return txs, nil
}

func (p *PostgresTransactionRepo) Update(ctx context.Context, tx transaction.Transaction) error {
	res := p.db.WithContext(ctx).Model(&transaction.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Select("type", "category", "amount", "description", "merchant", "date", "notes_encrypted", "is_recurring").
		Updates(&tx)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateTransaction")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresTransactionRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&transaction.Transaction{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteTransaction")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresTransactionRepo) Summary(ctx context.Context, userID uuid.UUID) (transaction.Summary, error) {
	var s transaction.Summary
	err := p.db.WithContext(ctx).Model(&transaction.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expenses,
			COUNT(*) AS transaction_count`, transaction.TypeIncome, transaction.TypeExpense).
		Where("user_id = ?", userID).
		Scan(&s).Error
	if err != nil {
		return transaction.Summary{}, customErrors.WrapInternal(err, "Summary")
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s, nil
}

func (p *PostgresTransactionRepo) filtered(ctx context.Context, f transaction.Filter) *gorm.DB {
	q := p.db.WithContext(ctx).Model(&transaction.Transaction{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date < ?", f.To)
	}
	return q
}
