package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/google/uuid"
)

type TransactionRepo struct {
	mu  sync.RWMutex
	txs map[uuid.UUID]transaction.Transaction
}

func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{txs: make(map[uuid.UUID]transaction.Transaction)}
}

func (r *TransactionRepo) Create(_ context.Context, tx transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	tx.CreatedAt, tx.UpdatedAt = now, now
	r.txs[tx.ID] = tx
	return nil
}

func (r *TransactionRepo) Get(_ context.Context, userID, id uuid.UUID) (transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.txs[id]
	if !ok || tx.UserID != userID {
		return transaction.Transaction{}, customErrors.ErrNotFound
	}
	return tx, nil
}

func (r *TransactionRepo) List(ctx context.Context, f transaction.Filter, page pagination.Page) ([]transaction.Transaction, int64, error) {
	all, err := r.All(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return window(all, page), int64(len(all)), nil
}

func (r *TransactionRepo) All(_ context.Context, f transaction.Filter) ([]transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []transaction.Transaction
	for _, tx := range r.txs {
		if matches(tx, f) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *TransactionRepo) Update(_ context.Context, tx transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.txs[tx.ID]
	if !ok || cur.UserID != tx.UserID {
		return customErrors.ErrNotFound
	}
	tx.CreatedAt = cur.CreatedAt
	tx.UpdatedAt = time.Now()
	r.txs[tx.ID] = tx
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.txs[id]
	if !ok || tx.UserID != userID {
		return customErrors.ErrNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *TransactionRepo) Summary(_ context.Context, userID uuid.UUID) (transaction.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s transaction.Summary
	for _, tx := range r.txs {
		if tx.UserID != userID {
			continue
		}
		s.TransactionCount++
		switch tx.Type {
		case transaction.TypeIncome:
			s.TotalIncome += tx.Amount
		case transaction.TypeExpense:
			s.TotalExpenses += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s, nil
}

// DeleteByUser drops a user's transactions; wire it with UserRepo.OnDelete.
func (r *TransactionRepo) DeleteByUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, tx := range r.txs {
		if tx.UserID == userID {
			delete(r.txs, id)
		}
	}
}

func matches(tx transaction.Transaction, f transaction.Filter) bool {
	if tx.UserID != f.UserID {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !tx.Date.Before(f.To) {
		return false
	}
	return true
}
