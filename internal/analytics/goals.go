package analytics

import (
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// SpendingLimitStatus reports progress against a monthly spending limit.
// Limit of 0 means no limit is set.
type SpendingLimitStatus struct {
	Spent       int64 `json:"spent"`
	Limit       int64 `json:"limit"`
	Remaining   int64 `json:"remaining"`
	UsedPercent int   `json:"used_percent"` // not capped at 100
	OverLimit   bool  `json:"over_limit"`
}

// SavingsGoalStatus reports progress against a monthly savings goal.
// Goal of 0 means no goal is set.
type SavingsGoalStatus struct {
	Saved           int64 `json:"saved"`
	Goal            int64 `json:"goal"`
	ProgressPercent int   `json:"progress_percent"` // not capped at 100
	MetGoal         bool  `json:"met_goal"`
}

// CheckSpendingLimit evaluates spending for the given month (or the
// whole history when year is 0) against the limit.
func CheckSpendingLimit(txns []model.Transaction, limit int64, year int, month time.Month) SpendingLimitStatus {
	if year != 0 {
		txns = FilterByMonth(txns, year, month)
	}
	spent := TotalSpending(txns)

	status := SpendingLimitStatus{Spent: spent, Limit: limit}
	if limit <= 0 {
		return status
	}
	status.Remaining = limit - spent
	status.UsedPercent = int(spent * 100 / limit)
	status.OverLimit = spent > limit
	return status
}

// CheckSavingsGoal evaluates net savings for the given month (or the
// whole history when year is 0) against the goal.
func CheckSavingsGoal(txns []model.Transaction, goal int64, year int, month time.Month) SavingsGoalStatus {
	if year != 0 {
		txns = FilterByMonth(txns, year, month)
	}
	saved := NetBalance(txns)

	status := SavingsGoalStatus{Saved: saved, Goal: goal}
	if goal <= 0 {
		return status
	}
	status.ProgressPercent = int(saved * 100 / goal)
	status.MetGoal = saved >= goal
	return status
}

// ComputeGoalStreak counts consecutive complete months, ending with the
// most recent complete month before now, in which net savings met the
// goal. Zero when no goal is set.
func ComputeGoalStreak(txns []model.Transaction, goal int64, now time.Time) int {
	if goal <= 0 {
		return 0
	}
	streak := 0
	cursor := now.AddDate(0, -1, 0) // last complete month
	for {
		monthTxns := FilterByMonth(txns, cursor.Year(), cursor.Month())
		if len(monthTxns) == 0 {
			break
		}
		if NetBalance(monthTxns) < goal {
			break
		}
		streak++
		cursor = cursor.AddDate(0, -1, 0)
	}
	return streak
}
