package analytics

import (
	"strings"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// SubscriptionTotals summarizes detected subscription spend.
type SubscriptionTotals struct {
	Total          int64 `json:"total"`
	Count          int   `json:"count"`
	MonthlyAverage int64 `json:"monthly_average"`
}

var subscriptionKeywords = []string{
	"subscription", "recurring", "monthly",
	"netflix", "spotify", "amazon prime", "disney", "hulu",
	"gym", "membership", "premium",
}

// SubscriptionTransactions picks out likely subscriptions: category
// marked as one, a known keyword in the description, or a recurring
// same-amount same-description charge in the prior 90 days.
func SubscriptionTransactions(txns []model.Transaction) []model.Transaction {
	var subs []model.Transaction
	for i := range txns {
		t := txns[i]
		if strings.Contains(strings.ToLower(t.Category), "subscription") {
			subs = append(subs, t)
			continue
		}
		desc := strings.ToLower(t.Description)
		matched := false
		for _, kw := range subscriptionKeywords {
			if strings.Contains(desc, kw) {
				subs = append(subs, t)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if isLikelyRecurring(&t, txns) {
			subs = append(subs, t)
		}
	}
	return subs
}

// isLikelyRecurring looks for an earlier charge with the same amount and
// description within 90 days.
func isLikelyRecurring(t *model.Transaction, all []model.Transaction) bool {
	if !t.IsSpending() {
		return false
	}
	cutoff := t.Date.Add(-90 * 24 * time.Hour)
	for i := range all {
		prior := &all[i]
		if prior.ID == t.ID {
			continue
		}
		if prior.Date.Before(cutoff) || !prior.Date.Before(t.Date) {
			continue
		}
		if prior.Amount == t.Amount && prior.Description == t.Description {
			return true
		}
	}
	return false
}

// CalculateSubscriptionTotals totals detected subscription spending.
func CalculateSubscriptionTotals(txns []model.Transaction) SubscriptionTotals {
	subs := SubscriptionTransactions(txns)
	var total int64
	for i := range subs {
		if subs[i].Amount < 0 {
			total += -subs[i].Amount
		} else {
			total += subs[i].Amount
		}
	}
	totals := SubscriptionTotals{Total: total, Count: len(subs)}
	if len(subs) > 0 {
		totals.MonthlyAverage = total / int64(len(subs))
	}
	return totals
}
