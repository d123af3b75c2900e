package analytics

import "github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

// DefaultForecastLookback is how many recent months feed the moving
// average.
const DefaultForecastLookback = 3

// Forecast is historical monthly spending plus the projected next month.
type Forecast struct {
	Months            []MonthlyTotal `json:"months"`
	ForecastNextMonth int64          `json:"forecast_next_month"`
}

// ForecastNextMonth projects next month's spending as a simple moving
// average of the last lookbackMonths months (all months if fewer exist).
func ForecastNextMonth(txns []model.Transaction, lookbackMonths int) int64 {
	trends := MonthlyTrends(txns)
	if len(trends) == 0 {
		return 0
	}
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultForecastLookback
	}
	if len(trends) > lookbackMonths {
		trends = trends[len(trends)-lookbackMonths:]
	}
	var total int64
	for _, m := range trends {
		total += m.Spending
	}
	return total / int64(len(trends))
}

// ForecastSpending returns the monthly history alongside the projection.
func ForecastSpending(txns []model.Transaction) Forecast {
	return Forecast{
		Months:            MonthlyTrends(txns),
		ForecastNextMonth: ForecastNextMonth(txns, DefaultForecastLookback),
	}
}
