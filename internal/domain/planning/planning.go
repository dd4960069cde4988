// Package planning holds the user-owned planning records: budgets, goals,
// scheduled payments, loans and subscriptions.
package planning

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
)

// Record is a row that belongs to exactly one user.
type Record[T any] interface {
	Key() uuid.UUID
	Owner() uuid.UUID
	// ListOrder is the SQL ORDER BY for listings; Before is the same order in Go.
	ListOrder() string
	Before(other T) bool
}

// Repo scopes every read and write by owner: a foreign id behaves as missing.
type Repo[T Record[T]] interface {
	Create(ctx context.Context, rec T) error
	Get(ctx context.Context, userID, id uuid.UUID) (T, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]T, int64, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Period string

const (
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

type Budget struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Category  string     `gorm:"size:32;not null" json:"category"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Period    Period     `gorm:"size:16;not null" json:"period"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	AlertAt   *float64   `json:"alertAt"` // percent of Amount
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Budget) TableName() string { return "budgets" }
func (b Budget) Key() uuid.UUID { return b.ID }
func (b Budget) Owner() uuid.UUID { return b.UserID }
func (Budget) ListOrder() string { return "created_at DESC" }
func (b Budget) Before(o Budget) bool { return b.CreatedAt.After(o.CreatedAt) }

type GoalType string

const (
	GoalSavings GoalType = "SAVINGS"
	GoalExpense GoalType = "EXPENSE"
)

type Goal struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Type          GoalType   `gorm:"size:16;not null" json:"type"`
	Color         string     `gorm:"size:32" json:"color"`
	TargetAmount  float64    `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64    `gorm:"not null;default:0" json:"currentAmount"`
	StartDate     time.Time  `gorm:"not null" json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Deadline      *time.Time `json:"deadline"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Goal) TableName() string { return "goals" }
func (g Goal) Key() uuid.UUID { return g.ID }
func (g Goal) Owner() uuid.UUID { return g.UserID }
func (Goal) ListOrder() string { return "created_at DESC" }
func (g Goal) Before(o Goal) bool { return g.CreatedAt.After(o.CreatedAt) }

type Frequency string

const (
	FrequencyDaily     Frequency = "DAILY"
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

type ScheduledPayment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Frequency   Frequency  `gorm:"size:16;not null" json:"frequency"`
	NextDate    time.Time  `gorm:"index;not null" json:"nextDate"`
	EndDate     *time.Time `json:"endDate"`
	Category    string     `gorm:"size:32" json:"category"`
	AutoExecute bool       `gorm:"not null;default:false" json:"autoExecute"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (ScheduledPayment) TableName() string { return "scheduled_payments" }
func (s ScheduledPayment) Key() uuid.UUID { return s.ID }
func (s ScheduledPayment) Owner() uuid.UUID {
	return s.UserID
}

// Ближайший платёж первым.
func (ScheduledPayment) ListOrder() string { return "next_date ASC" }
func (s ScheduledPayment) Before(o ScheduledPayment) bool {
	return s.NextDate.Before(o.NextDate)
}

type LoanType string

const (
	LoanLent     LoanType = "lent"
	LoanBorrowed LoanType = "borrowed"
)

type Loan struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Type      LoanType   `gorm:"size:16;not null" json:"type"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Color     string     `gorm:"size:32" json:"color"`
	Notes     string     `json:"notes"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Loan) TableName() string { return "loans" }
func (l Loan) Key() uuid.UUID { return l.ID }
func (l Loan) Owner() uuid.UUID { return l.UserID }
func (Loan) ListOrder() string { return "created_at DESC" }
func (l Loan) Before(o Loan) bool { return l.CreatedAt.After(o.CreatedAt) }

type Subscription struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Frequency   Frequency  `gorm:"size:16;not null" json:"frequency"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	NextBilling time.Time  `gorm:"not null" json:"nextBilling"`
	EndDate     *time.Time `json:"endDate"`
	Category    string     `gorm:"size:32" json:"category"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Subscription) TableName() string { return "subscriptions" }
func (s Subscription) Key() uuid.UUID { return s.ID }
func (s Subscription) Owner() uuid.UUID {
	return s.UserID
}
func (Subscription) ListOrder() string { return "created_at DESC" }
func (s Subscription) Before(o Subscription) bool {
	return s.CreatedAt.After(o.CreatedAt)
}
