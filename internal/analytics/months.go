package analytics

import (
	"sort"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// monthKeyLayout renders a month bucket key, e.g. "2025-01".
const monthKeyLayout = "2006-01"

// MonthlyTotal is one month's activity for trend views.
type MonthlyTotal struct {
	Month    string `json:"month"`
	Income   int64  `json:"income"`
	Spending int64  `json:"spending"`
	Net      int64  `json:"net"`
}

// MonthKey returns the bucket key for a date.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// FilterByMonth keeps transactions dated in the given year and month.
func FilterByMonth(txns []model.Transaction, year int, month time.Month) []model.Transaction {
	var out []model.Transaction
	for i := range txns {
		if txns[i].Date.Year() == year && txns[i].Date.Month() == month {
			out = append(out, txns[i])
		}
	}
	return out
}

// GroupByMonth buckets transactions by month key.
func GroupByMonth(txns []model.Transaction) map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for i := range txns {
		key := MonthKey(txns[i].Date)
		groups[key] = append(groups[key], txns[i])
	}
	return groups
}

// AvailableMonths lists the month keys present, oldest first.
func AvailableMonths(txns []model.Transaction) []string {
	seen := make(map[string]struct{})
	var months []string
	for i := range txns {
		key := MonthKey(txns[i].Date)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			months = append(months, key)
		}
	}
	sort.Strings(months)
	return months
}

// MonthlyTrends returns per-month income/spending/net totals, oldest
// month first.
func MonthlyTrends(txns []model.Transaction) []MonthlyTotal {
	groups := GroupByMonth(txns)
	months := AvailableMonths(txns)

	trends := make([]MonthlyTotal, 0, len(months))
	for _, key := range months {
		bucket := groups[key]
		trends = append(trends, MonthlyTotal{
			Month:    key,
			Income:   TotalIncome(bucket),
			Spending: TotalSpending(bucket),
			Net:      NetBalance(bucket),
		})
	}
	return trends
}
