package repository

import (
	"context"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// TransactionRepository defines operations for a user's transactions.
type TransactionRepository interface {
	ListByUser(ctx context.Context, username string) ([]model.Transaction, error)
	FindByID(ctx context.Context, username, id string) (*model.Transaction, error)
	Append(ctx context.Context, username string, txns []model.Transaction) error
	Update(ctx context.Context, username string, t *model.Transaction) error
	Delete(ctx context.Context, username, id string) error
	// ReplaceForUser swaps the user's whole transaction list, used after a
	// bulk re-categorization pass.
	ReplaceForUser(ctx context.Context, username string, txns []model.Transaction) error
}
