package activity

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/Miraines/bankr/api-service/internal/domain/pagination"
	"github.com/google/uuid"
)

const (
	ActionUserRegistered     = "USER_REGISTERED"
	ActionUserLoggedIn       = "USER_LOGGED_IN"
	ActionUserLoggedOut      = "USER_LOGGED_OUT"
	ActionUserProfileUpdated = "USER_PROFILE_UPDATED"
	ActionUserUpdatedByAdmin = "USER_UPDATED_BY_ADMIN"

	ActionCreatedTransaction = "CREATED_TRANSACTION"
	ActionUpdatedTransaction = "UPDATED_TRANSACTION"
	ActionDeletedTransaction = "DELETED_TRANSACTION"
)

const (
	EntityUser        = "User"
	EntityTransaction = "Transaction"

	EntityBudget           = "Budget"
	EntityGoal             = "Goal"
	EntityScheduledPayment = "ScheduledPayment"
	EntityLoan             = "Loan"
	EntitySubscription     = "Subscription"
)

// Planning actions: CREATED_BUDGET, UPDATED_GOAL, DELETED_SCHEDULED_PAYMENT and so on.
func Created(entity string) string { return "CREATED_" + upperSnake(entity) }
func Updated(entity string) string { return "UPDATED_" + upperSnake(entity) }
func Deleted(entity string) string { return "DELETED_" + upperSnake(entity) }

// "ScheduledPayment" -> "SCHEDULED_PAYMENT"
func upperSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

type Log struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Entity    string    `gorm:"size:64" json:"entity"`
	EntityID  string    `gorm:"size:64" json:"entityId,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Log) TableName() string { return "activity_logs" }

// Entry is what callers hand to the recorder.
type Entry struct {
	UserID   uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Details  string
}

type Repo interface {
	Create(ctx context.Context, l Log) error
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]Log, int64, error)
}
