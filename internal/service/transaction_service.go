package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/repository"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/rules"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/statement"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmptyStatement      = errors.New("statement contains no transactions")
)

// ImportResult summarizes a statement upload.
type ImportResult struct {
	UploadID     string              `json:"upload_id"`
	Bank         string              `json:"bank"`
	Imported     int                 `json:"imported"`
	Transactions []model.Transaction `json:"transactions"`
}

// TransactionService manages a user's transactions: manual entry,
// statement imports with auto-categorization, and edits.
type TransactionService interface {
	Create(ctx context.Context, username string, req model.CreateTransactionRequest) (*model.Transaction, error)
	List(ctx context.Context, username string, filters model.TransactionFilters) ([]model.Transaction, error)
	Get(ctx context.Context, username, id string) (*model.Transaction, error)
	Update(ctx context.Context, username, id string, req model.UpdateTransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, username, id string) error
	SetCategory(ctx context.Context, username, id, category string) (*model.Transaction, error)
	SetNotes(ctx context.Context, username, id, notes string) (*model.Transaction, error)
	ImportStatement(ctx context.Context, username, filename string, r io.Reader) (*ImportResult, error)
	Recategorize(ctx context.Context, username string, overwrite bool) (int, error)
}

type transactionService struct {
	repo  repository.TransactionRepository
	rules *rules.CategoryRules // nil when no rules file is configured
}

// NewTransactionService creates a new TransactionService. categoryRules
// may be nil, in which case imports stay uncategorized.
func NewTransactionService(repo repository.TransactionRepository, categoryRules *rules.CategoryRules) TransactionService {
	return &transactionService{repo: repo, rules: categoryRules}
}

func (s *transactionService) Create(ctx context.Context, username string, req model.CreateTransactionRequest) (*model.Transaction, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}
	category := req.Category
	userOverride := category != "" && category != model.CategoryUncategorized
	if category == "" {
		category = model.CategoryUncategorized
	}

	now := time.Now()
	t := model.Transaction{
		ID:             uuid.New().String(),
		Date:           date,
		Description:    rules.NormalizeDescription(req.Description),
		DescriptionRaw: req.Description,
		Amount:         req.Amount,
		Currency:       currency,
		Category:       category,
		Notes:          truncateNotes(req.Notes),
		UserOverride:   userOverride,
		SourceName:     "manual",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t.Description == "" {
		t.Description = strings.TrimSpace(req.Description)
	}
	if !userOverride && s.rules != nil {
		if suggestion := s.rules.Suggest(t.Description); suggestion != "" {
			t.Category = suggestion
		}
	}

	if err := s.repo.Append(ctx, username, []model.Transaction{t}); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}
	return &t, nil
}

func (s *transactionService) List(ctx context.Context, username string, filters model.TransactionFilters) ([]model.Transaction, error) {
	txns, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	filtered := txns[:0]
	for i := range txns {
		if filters.Matches(&txns[i]) {
			filtered = append(filtered, txns[i])
		}
	}
	return filtered, nil
}

func (s *transactionService) Get(ctx context.Context, username, id string) (*model.Transaction, error) {
	t, err := s.repo.FindByID(ctx, username, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (s *transactionService) Update(ctx context.Context, username, id string, req model.UpdateTransactionRequest) (*model.Transaction, error) {
	t, err := s.Get(ctx, username, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.Description != nil {
		t.DescriptionRaw = *req.Description
		t.Description = rules.NormalizeDescription(*req.Description)
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Category != nil {
		t.Category = *req.Category
		t.UserOverride = true
	}
	if req.Notes != nil {
		t.Notes = truncateNotes(*req.Notes)
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, username, t); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return t, nil
}

func (s *transactionService) Delete(ctx context.Context, username, id string) error {
	t, err := s.repo.FindByID(ctx, username, id)
	if err != nil {
		return fmt.Errorf("failed to find transaction: %w", err)
	}
	if t == nil {
		return ErrTransactionNotFound
	}
	if err := s.repo.Delete(ctx, username, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// SetCategory records a manual category edit; the override flag keeps
// auto-categorize from undoing it later.
func (s *transactionService) SetCategory(ctx context.Context, username, id, category string) (*model.Transaction, error) {
	t, err := s.Get(ctx, username, id)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = model.CategoryUncategorized
	}
	t.Category = category
	t.UserOverride = true
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, username, t); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return t, nil
}

func (s *transactionService) SetNotes(ctx context.Context, username, id, notes string) (*model.Transaction, error) {
	t, err := s.Get(ctx, username, id)
	if err != nil {
		return nil, err
	}
	t.Notes = truncateNotes(notes)
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, username, t); err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}
	return t, nil
}

// ImportStatement parses an uploaded bank CSV, auto-categorizes the
// rows, and appends them to the user's history. Row ids are prefixed
// with the upload id so repeat imports cannot collide.
func (s *transactionService) ImportStatement(ctx context.Context, username, filename string, r io.Reader) (*ImportResult, error) {
	bank := statement.DetectBank(filename)
	uploadID := fmt.Sprintf("upload-%s", uuid.New().String())

	txns, err := statement.Parse(r, bank, uploadID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse statement: %w", err)
	}
	if len(txns) == 0 {
		return nil, ErrEmptyStatement
	}

	for i := range txns {
		txns[i].ID = fmt.Sprintf("%s/%s", uploadID, txns[i].ID)
	}
	if s.rules != nil {
		s.rules.Apply(txns, false)
	}

	if err := s.repo.Append(ctx, username, txns); err != nil {
		return nil, fmt.Errorf("failed to store imported transactions: %w", err)
	}
	return &ImportResult{UploadID: uploadID, Bank: string(bank), Imported: len(txns), Transactions: txns}, nil
}

// Recategorize re-runs the rules over the user's whole history and
// reports how many categories changed.
func (s *transactionService) Recategorize(ctx context.Context, username string, overwrite bool) (int, error) {
	if s.rules == nil {
		return 0, nil
	}
	txns, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	before := make([]string, len(txns))
	for i := range txns {
		before[i] = txns[i].Category
	}
	s.rules.Apply(txns, overwrite)

	changed := 0
	now := time.Now()
	for i := range txns {
		if txns[i].Category != before[i] {
			txns[i].UpdatedAt = now
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.repo.ReplaceForUser(ctx, username, txns); err != nil {
		return 0, fmt.Errorf("failed to store recategorized transactions: %w", err)
	}
	return changed, nil
}

func truncateNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	if len(notes) > model.MaxNoteLength {
		notes = notes[:model.MaxNoteLength]
	}
	return notes
}
