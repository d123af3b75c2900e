package analytics

import (
	"testing"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionTransactions(t *testing.T) {
	byKeyword := txn("kw", 2025, 3, 1, -1549, "Streaming")
	byKeyword.Description = "netflix com"

	byCategory := txn("cat", 2025, 3, 2, -999, "Subscriptions")
	byCategory.Description = "some service"

	plain := txn("plain", 2025, 3, 3, -4200, "Groceries")
	plain.Description = "grocery outlet"

	first := txn("r1", 2025, 2, 5, -1099, "Uncategorized")
	first.Description = "acme cloud storage"
	repeat := txn("r2", 2025, 3, 5, -1099, "Uncategorized")
	repeat.Description = "acme cloud storage"

	subs := SubscriptionTransactions([]model.Transaction{byKeyword, byCategory, plain, first, repeat})

	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}
	assert.Contains(t, ids, "kw")
	assert.Contains(t, ids, "cat")
	// The repeat charge is flagged; the first occurrence has no prior.
	assert.Contains(t, ids, "r2")
	assert.NotContains(t, ids, "plain")
	assert.NotContains(t, ids, "r1")
}

func TestCalculateSubscriptionTotals(t *testing.T) {
	a := txn("a", 2025, 3, 1, -1549, "Subscriptions")
	b := txn("b", 2025, 3, 2, -999, "Subscriptions")

	totals := CalculateSubscriptionTotals([]model.Transaction{a, b})
	require.Equal(t, 2, totals.Count)
	assert.Equal(t, int64(2548), totals.Total)
	assert.Equal(t, int64(1274), totals.MonthlyAverage)

	empty := CalculateSubscriptionTotals(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, int64(0), empty.MonthlyAverage)
}
