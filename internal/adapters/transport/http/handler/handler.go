// Package handler holds the gin handlers behind /api, /health and /metrics.
package handler

import (
	"context"
	"time"

	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	authsvc "github.com/Miraines/bankr/api-service/internal/app/auth/service"
	planningsvc "github.com/Miraines/bankr/api-service/internal/app/planning/service"
	txsvc "github.com/Miraines/bankr/api-service/internal/app/transaction/service"
	usersvc "github.com/Miraines/bankr/api-service/internal/app/user/service"
	"github.com/Miraines/bankr/api-service/internal/infra/health"
	"go.uber.org/zap"
)

type Prober interface {
	Check(ctx context.Context) health.Report
}

// Services is everything the handlers call into.
type Services struct {
	Auth              authsvc.Service
	Users             usersvc.Service
	Activity          activitysvc.Service
	Transactions      txsvc.Service
	Budgets           planningsvc.BudgetService
	Goals             planningsvc.GoalService
	ScheduledPayments planningsvc.ScheduledPaymentService
	Loans             planningsvc.LoanService
	Subscriptions     planningsvc.SubscriptionService
}

type Handler struct {
	auth         authsvc.Service
	users        usersvc.Service
	activity     activitysvc.Service
	transactions txsvc.Service
	probe        Prober
	log          *zap.Logger
	startedAt    time.Time

	Budgets           Resource
	Goals             Resource
	ScheduledPayments Resource
	Loans             Resource
	Subscriptions     Resource
}

func New(s Services, probe Prober, log *zap.Logger) *Handler {
	h := &Handler{
		auth:         s.Auth,
		users:        s.Users,
		activity:     s.Activity,
		transactions: s.Transactions,
		probe:        probe,
		log:          log,
		startedAt:    time.Now(),
	}
	h.Budgets = newResource(h, s.Budgets, "Budget")
	h.Goals = newResource(h, s.Goals, "Goal")
	h.ScheduledPayments = newResource(h, s.ScheduledPayments, "Scheduled payment")
	h.Loans = newResource(h, s.Loans, "Loan")
	h.Subscriptions = newResource(h, s.Subscriptions, "Subscription")
	return h
}
