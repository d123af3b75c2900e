package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/analytics"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/repository"
)

// GoalsReport bundles the spending-limit and savings-goal checks.
type GoalsReport struct {
	SpendingLimit analytics.SpendingLimitStatus `json:"spending_limit"`
	SavingsGoal   analytics.SavingsGoalStatus   `json:"savings_goal"`
	GoalStreak    int                           `json:"goal_streak"`
}

// MonthsReport lists the months with activity and their totals.
type MonthsReport struct {
	Months []string                 `json:"months"`
	Trends []analytics.MonthlyTotal `json:"trends"`
}

// AnalyticsService computes budget views over a user's transactions.
// Period arguments of (0, 0) mean the whole history.
type AnalyticsService interface {
	Spending(ctx context.Context, username string, year int, month time.Month) ([]analytics.CategorySummary, error)
	Income(ctx context.Context, username string, year int, month time.Month) ([]analytics.CategorySummary, error)
	Months(ctx context.Context, username string) (*MonthsReport, error)
	Forecast(ctx context.Context, username string) (*analytics.Forecast, error)
	Goals(ctx context.Context, username string, year int, month time.Month) (*GoalsReport, error)
	Subscriptions(ctx context.Context, username string) ([]model.Transaction, analytics.SubscriptionTotals, error)
	Loan(ctx context.Context, username string, req analytics.LoanRequest) (*analytics.LoanDecision, error)
}

type analyticsService struct {
	txRepo   repository.TransactionRepository
	userRepo repository.UserRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(txRepo repository.TransactionRepository, userRepo repository.UserRepository) AnalyticsService {
	return &analyticsService{txRepo: txRepo, userRepo: userRepo}
}

func (s *analyticsService) load(ctx context.Context, username string, year int, month time.Month) ([]model.Transaction, error) {
	txns, err := s.txRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if year != 0 {
		txns = analytics.FilterByMonth(txns, year, month)
	}
	return txns, nil
}

func (s *analyticsService) Spending(ctx context.Context, username string, year int, month time.Month) ([]analytics.CategorySummary, error) {
	txns, err := s.load(ctx, username, year, month)
	if err != nil {
		return nil, err
	}
	return analytics.SpendingSummary(txns), nil
}

func (s *analyticsService) Income(ctx context.Context, username string, year int, month time.Month) ([]analytics.CategorySummary, error) {
	txns, err := s.load(ctx, username, year, month)
	if err != nil {
		return nil, err
	}
	return analytics.IncomeSummary(txns), nil
}

func (s *analyticsService) Months(ctx context.Context, username string) (*MonthsReport, error) {
	txns, err := s.load(ctx, username, 0, 0)
	if err != nil {
		return nil, err
	}
	return &MonthsReport{
		Months: analytics.AvailableMonths(txns),
		Trends: analytics.MonthlyTrends(txns),
	}, nil
}

func (s *analyticsService) Forecast(ctx context.Context, username string) (*analytics.Forecast, error) {
	txns, err := s.load(ctx, username, 0, 0)
	if err != nil {
		return nil, err
	}
	f := analytics.ForecastSpending(txns)
	return &f, nil
}

// Goals checks the requested period against the user's stored limit and
// goal, and refreshes the persisted goal streak when it drifts.
func (s *analyticsService) Goals(ctx context.Context, username string, year int, month time.Month) (*GoalsReport, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	txns, err := s.txRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	report := &GoalsReport{
		SpendingLimit: analytics.CheckSpendingLimit(txns, user.MonthlySpendingLimit, year, month),
		SavingsGoal:   analytics.CheckSavingsGoal(txns, user.MonthlySavingsGoal, year, month),
	}

	streak := analytics.ComputeGoalStreak(txns, user.MonthlySavingsGoal, time.Now())
	report.GoalStreak = streak
	if streak != user.GoalStreakCount {
		user.GoalStreakCount = streak
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update goal streak: %w", err)
		}
	}
	return report, nil
}

func (s *analyticsService) Subscriptions(ctx context.Context, username string) ([]model.Transaction, analytics.SubscriptionTotals, error) {
	txns, err := s.load(ctx, username, 0, 0)
	if err != nil {
		return nil, analytics.SubscriptionTotals{}, err
	}
	subs := analytics.SubscriptionTransactions(txns)
	return subs, analytics.CalculateSubscriptionTotals(txns), nil
}

// Loan scores a loan request, filling the goal streak and average
// balance from the user's own data when the request leaves them zero.
func (s *analyticsService) Loan(ctx context.Context, username string, req analytics.LoanRequest) (*analytics.LoanDecision, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.GoalStreak == 0 {
		req.GoalStreak = user.GoalStreakCount
	}
	if req.AvgBalance == 0 {
		txns, err := s.txRepo.ListByUser(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		if months := len(analytics.AvailableMonths(txns)); months > 0 {
			req.AvgBalance = analytics.NetBalance(txns) / int64(months)
		}
	}

	decision := analytics.CalculateLoan(req)
	return &decision, nil
}
