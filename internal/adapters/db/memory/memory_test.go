package memory

import (
	"context"
	"testing"
	"time"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CaseInsensitiveEmail(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "alice@example.com", Role: model.RoleFree, IsActive: true}
	_, err := r.CreateUser(ctx, u)
	require.NoError(t, err)

	got, err := r.GetUserByEmail(ctx, "ALICE@example.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = r.CreateUser(ctx, model.User{ID: uuid.New(), Email: "Alice@Example.com"})
	require.True(t, customErrors.IsAlreadyExists(err))
}

func TestUserRepo_RefreshTokenIsolation(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	id := uuid.New()
	_, err := r.CreateUser(ctx, model.User{ID: id, Email: "a@b.c"})
	require.NoError(t, err)

	tok := "t1"
	require.NoError(t, r.SetRefreshToken(ctx, id, &tok))
	tok = "mutated"

	got, err := r.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "t1", *got.RefreshToken)

	require.NoError(t, r.SetRefreshToken(ctx, id, nil))
	got, _ = r.GetUserByID(ctx, id)
	require.Nil(t, got.RefreshToken)

	require.True(t, customErrors.IsNotFound(r.SetRefreshToken(ctx, uuid.New(), nil)))
}

func TestUserRepo_UpdateAndCascade(t *testing.T) {
	users := NewUserRepo()
	logs := NewActivityRepo()
	users.OnDelete(logs.DeleteByUser)
	ctx := context.Background()

	id := uuid.New()
	_, err := users.CreateUser(ctx, model.User{ID: id, Email: "a@b.c", IsActive: true})
	require.NoError(t, err)
	tok := "rt"
	require.NoError(t, users.SetRefreshToken(ctx, id, &tok))

	role, inactive := model.RoleAdmin, false
	got, err := users.UpdateUser(ctx, id, repo.UserUpdate{Role: &role, IsActive: &inactive, ClearRefreshToken: true})
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, got.Role)
	require.False(t, got.IsActive)
	require.Nil(t, got.RefreshToken)

	require.NoError(t, logs.Create(ctx, activity.Log{ID: uuid.New(), UserID: id, Action: "X"}))
	require.NoError(t, users.DeleteUser(ctx, id))
	_, total, err := logs.ListByUser(ctx, id, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestActivityRepo_NewestFirst(t *testing.T) {
	r := NewActivityRepo()
	ctx := context.Background()
	uid := uuid.New()
	base := time.Now()

	for i, action := range []string{"A", "B", "C"} {
		require.NoError(t, r.Create(ctx, activity.Log{
			ID: uuid.New(), UserID: uid, Action: action, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, r.Create(ctx, activity.Log{ID: uuid.New(), UserID: uuid.New(), Action: "other"}))

	logs, total, err := r.ListByUser(ctx, uid, pagination.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	require.Equal(t, "C", logs[0].Action)
	require.Equal(t, "B", logs[1].Action)

	logs, _, err = r.ListByUser(ctx, uid, pagination.Page{Page: 5, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestTransactionRepo_FilterAndSummary(t *testing.T) {
	r := NewTransactionRepo()
	ctx := context.Background()
	uid := uuid.New()
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, transaction.Transaction{ID: uuid.New(), UserID: uid, Type: transaction.TypeIncome, Category: "SALARY", Amount: 1000, Date: jan}))
	require.NoError(t, r.Create(ctx, transaction.Transaction{ID: uuid.New(), UserID: uid, Type: transaction.TypeExpense, Category: "FOOD", Amount: 150, Date: feb}))
	require.NoError(t, r.Create(ctx, transaction.Transaction{ID: uuid.New(), UserID: uuid.New(), Type: transaction.TypeExpense, Category: "FOOD", Amount: 99, Date: feb}))

	all, total, err := r.List(ctx, transaction.Filter{UserID: uid}, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, feb, all[0].Date)

	janOnly, err := r.All(ctx, transaction.Filter{UserID: uid, From: jan.AddDate(0, 0, -9), To: feb.AddDate(0, 0, -2)})
	require.NoError(t, err)
	require.Len(t, janOnly, 1)

	s, err := r.Summary(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, transaction.Summary{TotalIncome: 1000, TotalExpenses: 150, Balance: 850, TransactionCount: 2}, s)

	require.True(t, customErrors.IsNotFound(r.Delete(ctx, uuid.New(), all[0].ID)))
	require.NoError(t, r.Delete(ctx, uid, all[0].ID))
}

func TestPlanningRepo_OwnerScope(t *testing.T) {
	r := NewPlanningRepo[planning.Goal]()
	ctx := context.Background()
	uid, other := uuid.New(), uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := planning.Goal{ID: uuid.New(), UserID: uid, Name: "car", TargetAmount: 1000, CreatedAt: base}
	second := planning.Goal{ID: uuid.New(), UserID: uid, Name: "trip", TargetAmount: 500, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))
	require.NoError(t, r.Create(ctx, planning.Goal{ID: uuid.New(), UserID: other, Name: "x", CreatedAt: base}))
	require.True(t, customErrors.IsAlreadyExists(r.Create(ctx, first)))

	list, total, err := r.List(ctx, uid, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, second.ID, list[0].ID)

	_, err = r.Get(ctx, other, first.ID)
	require.True(t, customErrors.IsNotFound(err))

	first.UserID = other
	require.True(t, customErrors.IsNotFound(r.Update(ctx, first)))
	first.UserID = uid
	first.CurrentAmount = 250
	require.NoError(t, r.Update(ctx, first))
	got, err := r.Get(ctx, uid, first.ID)
	require.NoError(t, err)
	require.Equal(t, 250.0, got.CurrentAmount)

	require.True(t, customErrors.IsNotFound(r.Delete(ctx, other, first.ID)))
	require.NoError(t, r.Delete(ctx, uid, first.ID))

	r.DeleteByUser(uid)
	_, total, err = r.List(ctx, uid, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	_, total, err = r.List(ctx, other, pagination.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
