package transaction

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
)

type Type string

const (
	TypeIncome   Type = "INCOME"
	TypeExpense  Type = "EXPENSE"
	TypeTransfer Type = "TRANSFER"
)

var Categories = []string{
	"FOOD", "TRANSPORT", "TRANSPORTATION", "SHOPPING", "ENTERTAINMENT", "BILLS", "UTILITIES",
	"HEALTHCARE", "EDUCATION", "HOUSING", "TRAVEL", "GIFTS", "TECHNOLOGY", "LIFESTYLE", "CLOTHING",
	"SALARY", "BUSINESS", "INVESTMENT", "INVESTMENTS", "FREELANCE", "CASH", "SAVINGS", "OTHER",
}

// Transaction as persisted. NotesEncrypted holds a field-encryption envelope, never plaintext.
type Transaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Type           Type      `gorm:"size:16;not null"`
	Category       string    `gorm:"size:32;not null"`
	Amount         float64   `gorm:"not null"`
	Description    string
	Merchant       string
	Date           time.Time `gorm:"index;not null"`
	NotesEncrypted string    `gorm:"column:notes_encrypted"`
	IsRecurring    bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Transaction) TableName() string { return "transactions" }

type Filter struct {
	UserID   uuid.UUID
	Type     Type
	Category string
	From     time.Time
	To       time.Time
}

type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	TransactionCount int64   `json:"transactionCount"`
}

type Repo interface {
	Create(ctx context.Context, tx Transaction) error
	Get(ctx context.Context, userID, id uuid.UUID) (Transaction, error)
	List(ctx context.Context, f Filter, page pagination.Page) ([]Transaction, int64, error)
	All(ctx context.Context, f Filter) ([]Transaction, error)
	Update(ctx context.Context, tx Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (Summary, error)
}

// Decrypted is a transaction with its notes opened for the owner.
type Decrypted struct {
	Transaction
	Notes string
}
