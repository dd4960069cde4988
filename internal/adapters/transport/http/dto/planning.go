package dto

import "time"

type CreateBudgetDTO struct {
	Category  string     `json:"category" validate:"required,category"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Period    string     `json:"period" validate:"required,oneof=WEEKLY MONTHLY YEARLY"`
	StartDate *time.Time `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
	AlertAt   *float64   `json:"alertAt" validate:"omitempty,min=0,max=100"`
}

type UpdateBudgetDTO struct {
	Category  *string    `json:"category" validate:"omitempty,category"`
	Amount    *float64   `json:"amount" validate:"omitempty,gt=0"`
	Period    *string    `json:"period" validate:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	AlertAt   *float64   `json:"alertAt" validate:"omitempty,min=0,max=100"`
}

type CreateGoalDTO struct {
	Name          string     `json:"name" validate:"required,max=255"`
	Type          string     `json:"type" validate:"omitempty,oneof=SAVINGS EXPENSE"`
	Color         string     `json:"color" validate:"max=32"`
	TargetAmount  float64    `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64    `json:"currentAmount" validate:"min=0"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Deadline      *time.Time `json:"deadline"`
	Description   string     `json:"description" validate:"max=2000"`
}

type UpdateGoalDTO struct {
	Name          *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Type          *string    `json:"type" validate:"omitempty,oneof=SAVINGS EXPENSE"`
	Color         *string    `json:"color" validate:"omitempty,max=32"`
	TargetAmount  *float64   `json:"targetAmount" validate:"omitempty,gt=0"`
	CurrentAmount *float64   `json:"currentAmount" validate:"omitempty,min=0"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Deadline      *time.Time `json:"deadline"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
}

type CreateScheduledPaymentDTO struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Frequency   string     `json:"frequency" validate:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY QUARTERLY YEARLY"`
	NextDate    *time.Time `json:"nextDate" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Category    string     `json:"category" validate:"omitempty,category"`
	AutoExecute bool       `json:"autoExecute"`
	Description string     `json:"description" validate:"max=2000"`
}

type UpdateScheduledPaymentDTO struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Frequency   *string    `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY BIWEEKLY MONTHLY QUARTERLY YEARLY"`
	NextDate    *time.Time `json:"nextDate"`
	EndDate     *time.Time `json:"endDate"`
	Category    *string    `json:"category" validate:"omitempty,category"`
	AutoExecute *bool      `json:"autoExecute"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
}

type CreateLoanDTO struct {
	Name      string     `json:"name" validate:"required,max=255"`
	Type      string     `json:"type" validate:"required,oneof=lent borrowed"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Color     string     `json:"color" validate:"max=32"`
	Notes     string     `json:"notes" validate:"max=2000"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type UpdateLoanDTO struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Type      *string    `json:"type" validate:"omitempty,oneof=lent borrowed"`
	Amount    *float64   `json:"amount" validate:"omitempty,gt=0"`
	Color     *string    `json:"color" validate:"omitempty,max=32"`
	Notes     *string    `json:"notes" validate:"omitempty,max=2000"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type CreateSubscriptionDTO struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Frequency   string     `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate   *time.Time `json:"startDate" validate:"required"`
	NextBilling *time.Time `json:"nextBilling" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Category    string     `json:"category" validate:"omitempty,category"`
	Description string     `json:"description" validate:"max=2000"`
}

type UpdateSubscriptionDTO struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Frequency   *string    `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate   *time.Time `json:"startDate"`
	NextBilling *time.Time `json:"nextBilling"`
	EndDate     *time.Time `json:"endDate"`
	Category    *string    `json:"category" validate:"omitempty,category"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
}
