package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	"github.com/Miraines/bankr/api-service/internal/app/validation"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/Miraines/bankr/api-service/internal/domain/transaction"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultLimit = 20

// FieldCipher is satisfied by fieldcrypt.Cipher.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID, q dto.TransactionQuery) ([]transaction.Decrypted, pagination.Meta, error)
	Get(ctx context.Context, userID, id uuid.UUID) (transaction.Decrypted, error)
	Create(ctx context.Context, userID uuid.UUID, in dto.CreateTransactionDTO) (transaction.Decrypted, error)
	Update(ctx context.Context, userID, id uuid.UUID, in dto.UpdateTransactionDTO) (transaction.Decrypted, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (transaction.Summary, error)
	// Export writes every matching transaction as CSV.
	Export(ctx context.Context, userID uuid.UUID, q dto.TransactionQuery, w io.Writer) error
}

type transactionService struct {
	repo     transaction.Repo
	cipher   FieldCipher
	activity activitysvc.Service
	v        *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func New(r transaction.Repo, c FieldCipher, act activitysvc.Service, v *validator.Validate, log *zap.Logger) Service {
	return &transactionService{repo: r, cipher: c, activity: act, v: v, log: log, now: time.Now}
}

func (s *transactionService) List(ctx context.Context, userID uuid.UUID, q dto.TransactionQuery) ([]transaction.Decrypted, pagination.Meta, error) {
	f, err := s.filter(userID, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	page := pagination.Page{Page: q.Page, Limit: q.Limit}.Normalize(DefaultLimit)

	txs, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, pagination.Meta{}, customErrors.WrapInternal(err, "ListTransactions")
	}
	out, err := s.openAll(ctx, txs)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return out, page.Meta(total), nil
}

func (s *transactionService) Get(ctx context.Context, userID, id uuid.UUID) (transaction.Decrypted, error) {
	tx, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return transaction.Decrypted{}, repoErr(err, "GetTransaction")
	}
	return s.open(tx)
}

func (s *transactionService) Create(ctx context.Context, userID uuid.UUID, in dto.CreateTransactionDTO) (transaction.Decrypted, error) {
	if err := s.v.Struct(in); err != nil {
		return transaction.Decrypted{}, validation.ToError(err)
	}

	notes, err := s.seal(in.Notes)
	if err != nil {
		return transaction.Decrypted{}, err
	}
	date := s.now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	tx := transaction.Transaction{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           transaction.Type(in.Type),
		Category:       in.Category,
		Amount:         in.Amount,
		Description:    in.Description,
		Merchant:       in.Merchant,
		Date:           date,
		NotesEncrypted: notes,
		IsRecurring:    in.IsRecurring,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return transaction.Decrypted{}, customErrors.WrapInternal(err, "CreateTransaction")
	}

	s.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   activity.ActionCreatedTransaction,
		Entity:   activity.EntityTransaction,
		EntityID: tx.ID.String(),
		Details:  fmt.Sprintf("Created %s transaction of %s", tx.Type, formatAmount(tx.Amount)),
	})
	return s.Get(ctx, userID, tx.ID)
}

func (s *transactionService) Update(ctx context.Context, userID, id uuid.UUID, in dto.UpdateTransactionDTO) (transaction.Decrypted, error) {
	if err := s.v.Struct(in); err != nil {
		return transaction.Decrypted{}, validation.ToError(err)
	}

	tx, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return transaction.Decrypted{}, repoErr(err, "UpdateTransaction")
	}

	if in.Type != nil {
		tx.Type = transaction.Type(*in.Type)
	}
	if in.Category != nil {
		tx.Category = *in.Category
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Description != nil {
		tx.Description = *in.Description
	}
	if in.Merchant != nil {
		tx.Merchant = *in.Merchant
	}
	if in.Date != nil {
		tx.Date = in.Date.UTC()
	}
	if in.IsRecurring != nil {
		tx.IsRecurring = *in.IsRecurring
	}
	if in.Notes != nil {
		if tx.NotesEncrypted, err = s.seal(*in.Notes); err != nil {
			return transaction.Decrypted{}, err
		}
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return transaction.Decrypted{}, repoErr(err, "UpdateTransaction")
	}

	s.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   activity.ActionUpdatedTransaction,
		Entity:   activity.EntityTransaction,
		EntityID: id.String(),
	})
	return s.Get(ctx, userID, id)
}

func (s *transactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return repoErr(err, "DeleteTransaction")
	}
	s.activity.Record(ctx, activity.Entry{
		UserID:   userID,
		Action:   activity.ActionDeletedTransaction,
		Entity:   activity.EntityTransaction,
		EntityID: id.String(),
	})
	return nil
}

func (s *transactionService) Summary(ctx context.Context, userID uuid.UUID) (transaction.Summary, error) {
	sum, err := s.repo.Summary(ctx, userID)
	if err != nil {
		return transaction.Summary{}, customErrors.WrapInternal(err, "Summary")
	}
	return sum, nil
}

func (s *transactionService) Export(ctx context.Context, userID uuid.UUID, q dto.TransactionQuery, w io.Writer) error {
	f, err := s.filter(userID, q)
	if err != nil {
		return err
	}
	txs, err := s.repo.All(ctx, f)
	if err != nil {
		return customErrors.WrapInternal(err, "ExportTransactions")
	}
	rows, err := s.openAll(ctx, txs)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "type", "category", "amount", "description", "merchant", "notes", "isRecurring"})
	for _, r := range rows {
		_ = cw.Write([]string{
			r.Date.UTC().Format(time.RFC3339),
			string(r.Type),
			r.Category,
			formatAmount(r.Amount),
			r.Description,
			r.Merchant,
			r.Notes,
			strconv.FormatBool(r.IsRecurring),
		})
	}
	cw.Flush()
	return cw.Error()
}

func (s *transactionService) filter(userID uuid.UUID, q dto.TransactionQuery) (transaction.Filter, error) {
	if err := s.v.Struct(q); err != nil {
		return transaction.Filter{}, validation.ToError(err)
	}
	f := transaction.Filter{UserID: userID, Type: transaction.Type(q.Type), Category: q.Category}

	// месяц учитывается только вместе с годом; неизвестное имя месяца игнорируется
	if q.Month != "" && q.Year != 0 {
		if m, ok := parseMonth(q.Month); ok {
			f.From = time.Date(q.Year, m, 1, 0, 0, 0, 0, time.UTC)
			f.To = f.From.AddDate(0, 1, 0)
		}
	}
	return f, nil
}

func (s *transactionService) seal(notes string) (string, error) {
	if notes == "" {
		return "", nil
	}
	env, err := s.cipher.Encrypt(notes)
	if err != nil {
		return "", customErrors.WrapInternal(err, "encrypt notes")
	}
	return env, nil
}

func (s *transactionService) open(tx transaction.Transaction) (transaction.Decrypted, error) {
	out := transaction.Decrypted{Transaction: tx}
	if tx.NotesEncrypted == "" {
		return out, nil
	}
	notes, err := s.cipher.Decrypt(tx.NotesEncrypted)
	if err != nil {
		s.log.Error("notes decryption failed", zap.String("transaction_id", tx.ID.String()), zap.Error(err))
		return transaction.Decrypted{}, customErrors.WrapInternal(err, "decrypt notes")
	}
	out.Notes = notes
	return out, nil
}

// openAll расшифровывает заметки параллельно: вывод ключа PBKDF2 упирается в CPU.
func (s *transactionService) openAll(ctx context.Context, txs []transaction.Transaction) ([]transaction.Decrypted, error) {
	out := make([]transaction.Decrypted, len(txs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range txs {
		i := i
		g.Go(func() error {
			d, err := s.open(txs[i])
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func repoErr(err error, op string) error {
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrNotFound
	}
	return customErrors.WrapInternal(err, op)
}

func parseMonth(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
