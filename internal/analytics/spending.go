// Package analytics provides budget calculations over a user's
// transactions: spending and income summaries, month grouping, spending
// forecasts, goal tracking, subscription detection, and loan scoring.
// All money values are signed cents; negative amounts are spending.
package analytics

import (
	"sort"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// CategorySummary is one slice of a spending or income breakdown.
type CategorySummary struct {
	Category string  `json:"category"`
	Amount   int64   `json:"amount"`
	Percent  float64 `json:"percent"`
}

// CategoryDetail extends CategorySummary with a transaction count.
type CategoryDetail struct {
	Amount  int64   `json:"amount"`
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

// TotalSpending sums outflows, returned as a positive number of cents.
func TotalSpending(txns []model.Transaction) int64 {
	var total int64
	for i := range txns {
		if txns[i].IsSpending() {
			total += -txns[i].Amount
		}
	}
	return total
}

// SpendingByCategory groups outflow totals by category.
func SpendingByCategory(txns []model.Transaction) map[string]int64 {
	totals := make(map[string]int64)
	for i := range txns {
		if !txns[i].IsSpending() {
			continue
		}
		category := txns[i].Category
		if category == "" {
			category = model.CategoryUncategorized
		}
		totals[category] += -txns[i].Amount
	}
	return totals
}

// SpendingSummary returns per-category spending with percentages, sorted
// by amount descending. An empty slice means no spending.
func SpendingSummary(txns []model.Transaction) []CategorySummary {
	total := TotalSpending(txns)
	if total == 0 {
		return nil
	}

	totals := SpendingByCategory(txns)
	summary := make([]CategorySummary, 0, len(totals))
	for category, amount := range totals {
		summary = append(summary, CategorySummary{
			Category: category,
			Amount:   amount,
			Percent:  float64(amount) / float64(total) * 100,
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Amount != summary[j].Amount {
			return summary[i].Amount > summary[j].Amount
		}
		return summary[i].Category < summary[j].Category
	})
	return summary
}

// CategoryBreakdown returns per-category totals, percentages, and counts.
func CategoryBreakdown(txns []model.Transaction) map[string]CategoryDetail {
	total := TotalSpending(txns)
	totals := SpendingByCategory(txns)

	breakdown := make(map[string]CategoryDetail, len(totals))
	counts := make(map[string]int)
	for i := range txns {
		if !txns[i].IsSpending() {
			continue
		}
		category := txns[i].Category
		if category == "" {
			category = model.CategoryUncategorized
		}
		counts[category]++
	}
	for category, amount := range totals {
		var percent float64
		if total > 0 {
			percent = float64(amount) / float64(total) * 100
		}
		breakdown[category] = CategoryDetail{Amount: amount, Percent: percent, Count: counts[category]}
	}
	return breakdown
}

// TopSpendingCategories returns the top N categories by spend.
func TopSpendingCategories(txns []model.Transaction, limit int) []CategorySummary {
	summary := SpendingSummary(txns)
	if limit > 0 && len(summary) > limit {
		summary = summary[:limit]
	}
	return summary
}
