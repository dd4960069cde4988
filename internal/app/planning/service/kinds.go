package service

import (
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/bankr/api-service/internal/domain/activity"
	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/google/uuid"
)

type (
	BudgetService           = Service[planning.Budget, dto.CreateBudgetDTO, dto.UpdateBudgetDTO]
	GoalService             = Service[planning.Goal, dto.CreateGoalDTO, dto.UpdateGoalDTO]
	ScheduledPaymentService = Service[planning.ScheduledPayment, dto.CreateScheduledPaymentDTO, dto.UpdateScheduledPaymentDTO]
	LoanService             = Service[planning.Loan, dto.CreateLoanDTO, dto.UpdateLoanDTO]
	SubscriptionService     = Service[planning.Subscription, dto.CreateSubscriptionDTO, dto.UpdateSubscriptionDTO]
)

var Budgets = Kind[planning.Budget, dto.CreateBudgetDTO, dto.UpdateBudgetDTO]{
	Entity: activity.EntityBudget,
	Build: func(userID uuid.UUID, in dto.CreateBudgetDTO, now time.Time) (planning.Budget, error) {
		b := planning.Budget{
			ID:        uuid.New(),
			UserID:    userID,
			Category:  in.Category,
			Amount:    in.Amount,
			Period:    planning.Period(in.Period),
			StartDate: in.StartDate.UTC(),
			EndDate:   utc(in.EndDate),
			AlertAt:   in.AlertAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return b, endAfterStart(&b.StartDate, b.EndDate)
	},
	Apply: func(b *planning.Budget, in dto.UpdateBudgetDTO, now time.Time) error {
		set(&b.Category, in.Category)
		set(&b.Amount, in.Amount)
		if in.Period != nil {
			b.Period = planning.Period(*in.Period)
		}
		if in.StartDate != nil {
			b.StartDate = in.StartDate.UTC()
		}
		if in.EndDate != nil {
			b.EndDate = utc(in.EndDate)
		}
		if in.AlertAt != nil {
			b.AlertAt = in.AlertAt
		}
		b.UpdatedAt = now
		return endAfterStart(&b.StartDate, b.EndDate)
	},
}

var Goals = Kind[planning.Goal, dto.CreateGoalDTO, dto.UpdateGoalDTO]{
	Entity: activity.EntityGoal,
	Build: func(userID uuid.UUID, in dto.CreateGoalDTO, now time.Time) (planning.Goal, error) {
		g := planning.Goal{
			ID:            uuid.New(),
			UserID:        userID,
			Name:          in.Name,
			Type:          planning.GoalSavings,
			Color:         in.Color,
			TargetAmount:  in.TargetAmount,
			CurrentAmount: in.CurrentAmount,
			StartDate:     now,
			EndDate:       utc(in.EndDate),
			Deadline:      utc(in.Deadline),
			Description:   in.Description,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if in.Type != "" {
			g.Type = planning.GoalType(in.Type)
		}
		if in.StartDate != nil {
			g.StartDate = in.StartDate.UTC()
		}
		return g, endAfterStart(&g.StartDate, g.EndDate)
	},
	Apply: func(g *planning.Goal, in dto.UpdateGoalDTO, now time.Time) error {
		set(&g.Name, in.Name)
		if in.Type != nil {
			g.Type = planning.GoalType(*in.Type)
		}
		set(&g.Color, in.Color)
		set(&g.TargetAmount, in.TargetAmount)
		set(&g.CurrentAmount, in.CurrentAmount)
		if in.StartDate != nil {
			g.StartDate = in.StartDate.UTC()
		}
		if in.EndDate != nil {
			g.EndDate = utc(in.EndDate)
		}
		if in.Deadline != nil {
			g.Deadline = utc(in.Deadline)
		}
		set(&g.Description, in.Description)
		g.UpdatedAt = now
		return endAfterStart(&g.StartDate, g.EndDate)
	},
}

var ScheduledPayments = Kind[planning.ScheduledPayment, dto.CreateScheduledPaymentDTO, dto.UpdateScheduledPaymentDTO]{
	Entity: activity.EntityScheduledPayment,
	Build: func(userID uuid.UUID, in dto.CreateScheduledPaymentDTO, now time.Time) (planning.ScheduledPayment, error) {
		p := planning.ScheduledPayment{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        in.Name,
			Amount:      in.Amount,
			Frequency:   planning.Frequency(in.Frequency),
			NextDate:    in.NextDate.UTC(),
			EndDate:     utc(in.EndDate),
			Category:    in.Category,
			AutoExecute: in.AutoExecute,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return p, nil
	},
	Apply: func(p *planning.ScheduledPayment, in dto.UpdateScheduledPaymentDTO, now time.Time) error {
		set(&p.Name, in.Name)
		set(&p.Amount, in.Amount)
		if in.Frequency != nil {
			p.Frequency = planning.Frequency(*in.Frequency)
		}
		if in.NextDate != nil {
			p.NextDate = in.NextDate.UTC()
		}
		if in.EndDate != nil {
			p.EndDate = utc(in.EndDate)
		}
		set(&p.Category, in.Category)
		set(&p.AutoExecute, in.AutoExecute)
		set(&p.Description, in.Description)
		p.UpdatedAt = now
		return nil
	},
}

var Loans = Kind[planning.Loan, dto.CreateLoanDTO, dto.UpdateLoanDTO]{
	Entity: activity.EntityLoan,
	Build: func(userID uuid.UUID, in dto.CreateLoanDTO, now time.Time) (planning.Loan, error) {
		l := planning.Loan{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      in.Name,
			Type:      planning.LoanType(in.Type),
			Amount:    in.Amount,
			Color:     in.Color,
			Notes:     in.Notes,
			StartDate: utc(in.StartDate),
			EndDate:   utc(in.EndDate),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return l, endAfterStart(l.StartDate, l.EndDate)
	},
	Apply: func(l *planning.Loan, in dto.UpdateLoanDTO, now time.Time) error {
		set(&l.Name, in.Name)
		if in.Type != nil {
			l.Type = planning.LoanType(*in.Type)
		}
		set(&l.Amount, in.Amount)
		set(&l.Color, in.Color)
		set(&l.Notes, in.Notes)
		if in.StartDate != nil {
			l.StartDate = utc(in.StartDate)
		}
		if in.EndDate != nil {
			l.EndDate = utc(in.EndDate)
		}
		l.UpdatedAt = now
		return endAfterStart(l.StartDate, l.EndDate)
	},
}

var Subscriptions = Kind[planning.Subscription, dto.CreateSubscriptionDTO, dto.UpdateSubscriptionDTO]{
	Entity: activity.EntitySubscription,
	Build: func(userID uuid.UUID, in dto.CreateSubscriptionDTO, now time.Time) (planning.Subscription, error) {
		s := planning.Subscription{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        in.Name,
			Amount:      in.Amount,
			Frequency:   planning.Frequency(in.Frequency),
			StartDate:   in.StartDate.UTC(),
			NextBilling: in.NextBilling.UTC(),
			EndDate:     utc(in.EndDate),
			Category:    in.Category,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s, endAfterStart(&s.StartDate, s.EndDate)
	},
	Apply: func(s *planning.Subscription, in dto.UpdateSubscriptionDTO, now time.Time) error {
		set(&s.Name, in.Name)
		set(&s.Amount, in.Amount)
		if in.Frequency != nil {
			s.Frequency = planning.Frequency(*in.Frequency)
		}
		if in.StartDate != nil {
			s.StartDate = in.StartDate.UTC()
		}
		if in.NextBilling != nil {
			s.NextBilling = in.NextBilling.UTC()
		}
		if in.EndDate != nil {
			s.EndDate = utc(in.EndDate)
		}
		set(&s.Category, in.Category)
		set(&s.Description, in.Description)
		s.UpdatedAt = now
		return endAfterStart(&s.StartDate, s.EndDate)
	},
}

func set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// endAfterStart отклоняет интервал, который заканчивается раньше начала.
func endAfterStart(start, end *time.Time) error {
	if start == nil || end == nil || !end.Before(*start) {
		return nil
	}
	return customErrors.NewValidation(customErrors.FieldError{
		Path:    "endDate",
		Message: "End date must be after the start date",
	})
}
