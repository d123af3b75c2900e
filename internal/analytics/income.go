package analytics

import "github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

// TotalIncome sums inflows in cents.
func TotalIncome(txns []model.Transaction) int64 {
	var total int64
	for i := range txns {
		if txns[i].IsIncome() {
			total += txns[i].Amount
		}
	}
	return total
}

// NetBalance is income minus spending; negative means a deficit.
func NetBalance(txns []model.Transaction) int64 {
	return TotalIncome(txns) - TotalSpending(txns)
}

// IncomeSummary splits activity into "Income" and "Spending" slices with
// percentages of combined flow, for the income-vs-spending chart.
func IncomeSummary(txns []model.Transaction) []CategorySummary {
	income := TotalIncome(txns)
	spending := TotalSpending(txns)
	total := income + spending
	if total == 0 {
		return nil
	}
	return []CategorySummary{
		{Category: "Income", Amount: income, Percent: float64(income) / float64(total) * 100},
		{Category: "Spending", Amount: spending, Percent: float64(spending) / float64(total) * 100},
	}
}
