package analytics

import (
	"testing"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCheckSpendingLimit(t *testing.T) {
	txns := []model.Transaction{
		txn("a", 2025, 3, 1, -60000, "Groceries"),
		txn("b", 2025, 2, 1, -10000, "Groceries"),
	}

	status := CheckSpendingLimit(txns, 50000, 2025, 3)
	assert.Equal(t, int64(60000), status.Spent)
	assert.Equal(t, int64(-10000), status.Remaining)
	assert.Equal(t, 120, status.UsedPercent) // not capped at 100
	assert.True(t, status.OverLimit)

	// Year 0 checks the whole history.
	status = CheckSpendingLimit(txns, 100000, 0, 0)
	assert.Equal(t, int64(70000), status.Spent)
	assert.False(t, status.OverLimit)

	// No limit set.
	status = CheckSpendingLimit(txns, 0, 2025, 3)
	assert.Equal(t, 0, status.UsedPercent)
	assert.False(t, status.OverLimit)
}

func TestCheckSavingsGoal(t *testing.T) {
	txns := []model.Transaction{
		txn("a", 2025, 3, 1, 100000, "Salary"),
		txn("b", 2025, 3, 5, -40000, "Rent"),
	}

	status := CheckSavingsGoal(txns, 50000, 2025, 3)
	assert.Equal(t, int64(60000), status.Saved)
	assert.Equal(t, 120, status.ProgressPercent)
	assert.True(t, status.MetGoal)

	status = CheckSavingsGoal(txns, 80000, 2025, 3)
	assert.False(t, status.MetGoal)
}

func TestComputeGoalStreak(t *testing.T) {
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	goal := int64(10000)

	txns := []model.Transaction{
		// March and February met the goal, January did not.
		txn("a", 2025, 3, 1, 20000, "Salary"),
		txn("b", 2025, 2, 1, 15000, "Salary"),
		txn("c", 2025, 1, 1, 5000, "Salary"),
	}
	assert.Equal(t, 2, ComputeGoalStreak(txns, goal, now))

	// The current, incomplete month does not count.
	txns = append(txns, txn("d", 2025, 4, 1, 50000, "Salary"))
	assert.Equal(t, 2, ComputeGoalStreak(txns, goal, now))

	// A month with no activity breaks the streak.
	gap := []model.Transaction{txn("a", 2025, 2, 1, 20000, "Salary")}
	assert.Equal(t, 0, ComputeGoalStreak(gap, goal, now))

	assert.Equal(t, 0, ComputeGoalStreak(txns, 0, now))
}
