package model

import "time"

// CategoryUncategorized is the category assigned to transactions that no
// rule matched and the user has not edited.
const CategoryUncategorized = "Uncategorized"

// MaxNoteLength caps user notes attached to a transaction.
const MaxNoteLength = 2048

// Transaction is a single bank-statement line normalized into the
// application's shape. Amount is in cents; negative means spending,
// positive means income.
type Transaction struct {
	ID             string     `json:"id"` // "row:N" from an import, or a uuid
	Date           time.Time  `json:"date"`
	PostedDate     *time.Time `json:"posted_date,omitempty"`
	Description    string     `json:"description"`     // normalized for rule matching
	DescriptionRaw string     `json:"description_raw"` // original bank text
	Amount         int64      `json:"amount"`
	Currency       string     `json:"currency"`
	TxnType        string     `json:"txn_type,omitempty"` // bank-reported type, e.g. DEBIT
	Balance        *int64     `json:"balance,omitempty"`  // running balance if the bank provides it
	Category       string     `json:"category"`
	Notes          string     `json:"notes,omitempty"`
	UserOverride   bool       `json:"user_override"` // manual category, auto-categorize must not touch
	SourceName     string     `json:"source_name,omitempty"`
	SourceUploadID string     `json:"source_upload_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsSpending reports whether the transaction is an outflow.
func (t *Transaction) IsSpending() bool { return t.Amount < 0 }

// IsIncome reports whether the transaction is an inflow.
func (t *Transaction) IsIncome() bool { return t.Amount > 0 }

// CreateTransactionRequest is the payload for manually adding a transaction.
type CreateTransactionRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description" binding:"required"`
	Amount      int64     `json:"amount" binding:"required"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Notes       string    `json:"notes"`
}

// UpdateTransactionRequest allows partial edits of a transaction.
type UpdateTransactionRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Amount      *int64     `json:"amount,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// TransactionFilters narrow a transaction listing.
type TransactionFilters struct {
	Category  *string
	Spending  *bool // true = outflows only, false = inflows only
	StartDate *time.Time
	EndDate   *time.Time
}

// Matches reports whether the transaction passes every set filter.
func (f TransactionFilters) Matches(t *Transaction) bool {
	if f.Category != nil && *f.Category != "" && t.Category != *f.Category {
		return false
	}
	if f.Spending != nil {
		if *f.Spending && !t.IsSpending() {
			return false
		}
		if !*f.Spending && !t.IsIncome() {
			return false
		}
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	return true
}
