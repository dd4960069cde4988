package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// каждое соединение :memory: это отдельная база
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &activity.Log{}, &transaction.Transaction{},
		&planning.Budget{}, &planning.Goal{}, &planning.ScheduledPayment{}, &planning.Loan{}, &planning.Subscription{},
	))
	return db
}

func TestPostgresUserRepo_CRUD(t *testing.T) {
	r := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	tok := "rt"
	user := model.User{ID: uuid.New(), Email: "e@x.io", PasswordHash: "h", Role: model.RoleFree, IsActive: true, RefreshToken: &tok}

	id, err := r.CreateUser(ctx, user)
	require.NoError(t, err)
	require.Equal(t, user.ID, id)

	_, err = r.CreateUser(ctx, model.User{ID: uuid.New(), Email: "e@x.io", PasswordHash: "h", Role: model.RoleFree})
	require.Error(t, err)

	got, err := r.GetUserByEmail(ctx, "E@X.IO")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "rt", *got.RefreshToken)

	_, err = r.GetUserByEmail(ctx, "nobody@x.io")
	require.True(t, errors.IsNotFound(err))

	role := model.RolePremium
	updated, err := r.UpdateUser(ctx, user.ID, repo.UserUpdate{Role: &role, ClearRefreshToken: true})
	require.NoError(t, err)
	require.Equal(t, model.RolePremium, updated.Role)
	require.Nil(t, updated.RefreshToken)

	_, err = r.UpdateUser(ctx, uuid.New(), repo.UserUpdate{Role: &role})
	require.True(t, errors.IsNotFound(err))

	next := "rt-2"
	require.NoError(t, r.SetRefreshToken(ctx, user.ID, &next))
	got, err = r.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "rt-2", *got.RefreshToken)

	require.NoError(t, r.SetRefreshToken(ctx, user.ID, nil))
	got, err = r.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, got.RefreshToken)

	require.True(t, errors.IsNotFound(r.SetRefreshToken(ctx, uuid.New(), &next)))

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, r.DeleteUser(ctx, user.ID))
	_, err = r.GetUserByID(ctx, user.ID)
	require.True(t, errors.IsNotFound(err))
	require.True(t, errors.IsNotFound(r.DeleteUser(ctx, user.ID)))
}

func TestPostgresActivityRepo_ListByUser(t *testing.T) {
	r := NewPostgresActivityRepo(setupDB(t))
	ctx := context.Background()
	uid := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Create(ctx, activity.Log{
			ID: uuid.New(), UserID: uid, Action: activity.ActionUserLoggedIn, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, r.Create(ctx, activity.Log{ID: uuid.New(), UserID: uuid.New(), Action: activity.ActionUserLoggedIn, CreatedAt: base}))

	logs, total, err := r.ListByUser(ctx, uid, pagination.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	require.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))

	logs, _, err = r.ListByUser(ctx, uid, pagination.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestPostgresTransactionRepo(t *testing.T) {
	r := NewPostgresTransactionRepo(setupDB(t))
	ctx := context.Background()
	uid, other := uuid.New(), uuid.New()
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	mk := func(owner uuid.UUID, typ transaction.Type, amount float64, date time.Time) transaction.Transaction {
		tx := transaction.Transaction{ID: uuid.New(), UserID: owner, Type: typ, Category: "OTHER", Amount: amount, Date: date}
		require.NoError(t, r.Create(ctx, tx))
		return tx
	}
	income := mk(uid, transaction.TypeIncome, 500, march)
	mk(uid, transaction.TypeExpense, 120, march.AddDate(0, 0, 1))
	mk(uid, transaction.TypeTransfer, 30, march.AddDate(0, 1, 0))
	mk(other, transaction.TypeIncome, 999, march)

	_, err := r.Get(ctx, other, income.ID)
	require.True(t, errors.IsNotFound(err))

	f := transaction.Filter{UserID: uid, From: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)}
	f.To = f.From.AddDate(0, 1, 0)
	txs, total, err := r.List(ctx, f, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, transaction.TypeExpense, txs[0].Type)

	all, err := r.All(ctx, transaction.Filter{UserID: uid, Type: transaction.TypeTransfer})
	require.NoError(t, err)
	require.Len(t, all, 1)

	income.Amount = 700
	income.IsRecurring = true
	require.NoError(t, r.Update(ctx, income))
	got, err := r.Get(ctx, uid, income.ID)
	require.NoError(t, err)
	require.Equal(t, 700.0, got.Amount)
	require.True(t, got.IsRecurring)

	income.UserID = other
	require.True(t, errors.IsNotFound(r.Update(ctx, income)))

	sum, err := r.Summary(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, 700.0, sum.TotalIncome)
	require.Equal(t, 120.0, sum.TotalExpenses)
	require.Equal(t, 580.0, sum.Balance)
	require.Equal(t, int64(3), sum.TransactionCount)

	require.True(t, errors.IsNotFound(r.Delete(ctx, other, got.ID)))
	require.NoError(t, r.Delete(ctx, uid, got.ID))
}

func TestPostgresPlanningRepo_Budgets(t *testing.T) {
	r := NewPostgresPlanningRepo[planning.Budget](setupDB(t))
	ctx := context.Background()
	uid, other := uuid.New(), uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		b := planning.Budget{
			ID: uuid.New(), UserID: uid, Category: "FOOD", Amount: float64(100 * (i + 1)),
			Period: planning.PeriodMonthly, StartDate: base, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, r.Create(ctx, b))
		ids = append(ids, b.ID)
	}
	require.NoError(t, r.Create(ctx, planning.Budget{
		ID: uuid.New(), UserID: other, Category: "FOOD", Amount: 1, Period: planning.PeriodWeekly, StartDate: base,
	}))

	list, total, err := r.List(ctx, uid, pagination.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	require.Equal(t, ids[2], list[0].ID)

	_, err = r.Get(ctx, other, ids[0])
	require.True(t, errors.IsNotFound(err))

	got, err := r.Get(ctx, uid, ids[0])
	require.NoError(t, err)
	alert := 75.0
	end := base.AddDate(0, 1, 0)
	got.Amount = 250
	got.AlertAt = &alert
	got.EndDate = &end
	require.NoError(t, r.Update(ctx, got))

	got, err = r.Get(ctx, uid, ids[0])
	require.NoError(t, err)
	require.Equal(t, 250.0, got.Amount)
	require.Equal(t, 75.0, *got.AlertAt)
	require.True(t, end.Equal(*got.EndDate))
	require.True(t, base.Equal(got.CreatedAt))

	got.UserID = other
	require.True(t, errors.IsNotFound(r.Update(ctx, got)))

	require.True(t, errors.IsNotFound(r.Delete(ctx, other, ids[0])))
	require.NoError(t, r.Delete(ctx, uid, ids[0]))
	_, err = r.Get(ctx, uid, ids[0])
	require.True(t, errors.IsNotFound(err))
}

func TestPostgresPlanningRepo_ScheduledPaymentsByNextDate(t *testing.T) {
	r := NewPostgresPlanningRepo[planning.ScheduledPayment](setupDB(t))
	ctx := context.Background()
	uid := uuid.New()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, days := range []int{20, 5, 12} {
		require.NoError(t, r.Create(ctx, planning.ScheduledPayment{
			ID: uuid.New(), UserID: uid, Name: "rent", Amount: 10,
			Frequency: planning.FrequencyMonthly, NextDate: base.AddDate(0, 0, days),
		}))
	}

	list, total, err := r.List(ctx, uid, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.True(t, list[0].NextDate.Before(list[1].NextDate))
	require.True(t, list[1].NextDate.Before(list[2].NextDate))

	empty, total, err := r.List(ctx, uuid.New(), pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, empty)
}
