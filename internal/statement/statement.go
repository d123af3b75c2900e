// Package statement parses bank-statement CSV exports into normalized
// transactions. Wells Fargo exports carry no header row; Chase and
// Truist exports do, with bank-specific column names.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/rules"
)

// Bank identifies a supported statement format.
type Bank string

const (
	BankWellsFargo Bank = "wells-fargo"
	BankChase      Bank = "chase"
	BankTruist     Bank = "truist"
)

// wellsFargoColumns is the fixed column layout of a headerless Wells
// Fargo CSV export.
var wellsFargoColumns = []string{"Date", "Amount", "Filler1", "Filler2", "Description"}

// DetectBank guesses the bank from an uploaded filename. Wells Fargo is
// the fallback for unrecognized names.
func DetectBank(filename string) Bank {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "chase"):
		return BankChase
	case strings.Contains(name, "truist"):
		return BankTruist
	default:
		return BankWellsFargo
	}
}

// columnCandidates maps logical fields to column names seen across bank
// exports; the first present, non-empty candidate wins.
var columnCandidates = map[string][]string{
	"id":          {"Id", "ID", "TransactionId", "Ref", "Reference"},
	"date":        {"Date", "Transaction Date", "Posted Date", "Posting Date"},
	"posted_date": {"Posted Date", "Posting Date"},
	"description": {"Description", "Memo", "Details", "Name"},
	"amount":      {"Amount", "Transaction Amount", "Value"},
	"debit":       {"Debit", "Withdrawal", "Outflow"},
	"credit":      {"Credit", "Deposit", "Inflow"},
	"balance":     {"Balance", "Running Balance"},
	"type":        {"Type", "Transaction Type"},
	"currency":    {"Currency", "CCY"},
}

var dateFormats = []string{
	"2006-01-02", "01/02/2006", "02/01/2006", "01/02/06",
	"Jan 2 2006", "2 Jan 2006",
}

// Parse reads a statement CSV and returns normalized transactions.
// Unparseable rows are skipped rather than failing the whole upload.
func Parse(r io.Reader, bank Bank, uploadID string) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // bank exports are ragged often enough

	var header []string
	if bank == BankWellsFargo {
		header = wellsFargoColumns
	} else {
		first, err := reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement header: %w", err)
		}
		header = first
	}

	now := time.Now()
	var txns []model.Transaction
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement row: %w", err)
		}
		rowNum++

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}

		amount, ok := parseAmount(row)
		if !ok {
			continue
		}
		rawDesc := pickFirst(row, columnCandidates["description"])
		date, ok := parseDate(pickFirst(row, columnCandidates["date"]))
		if !ok {
			date = now
		}

		id := pickFirst(row, columnCandidates["id"])
		if id == "" {
			id = fmt.Sprintf("row:%d", rowNum)
		}

		currency := strings.ToUpper(pickFirst(row, columnCandidates["currency"]))
		if currency == "" {
			currency = "USD"
		}

		t := model.Transaction{
			ID:             id,
			Date:           date,
			Description:    rules.NormalizeDescription(rawDesc),
			DescriptionRaw: rawDesc,
			Amount:         amount,
			Currency:       currency,
			TxnType:        pickFirst(row, columnCandidates["type"]),
			Category:       model.CategoryUncategorized,
			SourceName:     string(bank),
			SourceUploadID: uploadID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if t.Description == "" {
			t.Description = strings.TrimSpace(rawDesc)
		}
		if posted, ok := parseDate(pickFirst(row, columnCandidates["posted_date"])); ok {
			t.PostedDate = &posted
		}
		if bal, ok := parseCents(pickFirst(row, columnCandidates["balance"])); ok {
			t.Balance = &bal
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func pickFirst(row map[string]string, candidates []string) string {
	for _, c := range candidates {
		if v := row[c]; v != "" {
			return v
		}
	}
	return ""
}

// parseAmount derives the signed amount in cents. A single signed Amount
// column wins; otherwise separate Debit/Credit columns are combined
// (debit negative, credit positive).
func parseAmount(row map[string]string) (int64, bool) {
	if v := pickFirst(row, columnCandidates["amount"]); v != "" {
		if cents, ok := parseCents(v); ok {
			return cents, true
		}
	}
	debit := pickFirst(row, columnCandidates["debit"])
	credit := pickFirst(row, columnCandidates["credit"])
	if d, ok := parseCents(debit); ok && d != 0 {
		if d > 0 {
			d = -d
		}
		return d, true
	}
	if c, ok := parseCents(credit); ok && c != 0 {
		return c, true
	}
	return 0, false
}

// parseCents converts money text like "$1,234.56" or "(12.00)" into
// signed cents.
func parseCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	cents := int64(f*100 + copysignHalf(f))
	if negative {
		cents = -cents
	}
	return cents, true
}

// copysignHalf rounds half away from zero when scaling to cents.
func copysignHalf(f float64) float64 {
	if f < 0 {
		return -0.5
	}
	return 0.5
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
