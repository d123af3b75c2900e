package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	"github.com/jackc/pgx/v5"
)

type postgresTransactionRepository struct {
	db DB
}

// NewPostgresTransactionRepository creates a TransactionRepository backed
// by PostgreSQL.
func NewPostgresTransactionRepository(db DB) TransactionRepository {
	return &postgresTransactionRepository{db: db}
}

const txnColumns = `id, date, posted_date, description, description_raw, amount, currency, txn_type, balance, category, notes, user_override, source_name, source_upload_id, created_at, updated_at`

func scanTransaction(row pgx.Row, t *model.Transaction) error {
	return row.Scan(&t.ID, &t.Date, &t.PostedDate, &t.Description, &t.DescriptionRaw, &t.Amount,
		&t.Currency, &t.TxnType, &t.Balance, &t.Category, &t.Notes, &t.UserOverride,
		&t.SourceName, &t.SourceUploadID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *postgresTransactionRepository) ListByUser(ctx context.Context, username string) ([]model.Transaction, error) {
	sql := `SELECT ` + txnColumns + ` FROM transactions WHERE username = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.db.Query(ctx, sql, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *postgresTransactionRepository) FindByID(ctx context.Context, username, id string) (*model.Transaction, error) {
	t := &model.Transaction{}
	sql := `SELECT ` + txnColumns + ` FROM transactions WHERE username = $1 AND id = $2`
	if err := scanTransaction(r.db.QueryRow(ctx, sql, username, id), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	return t, nil
}

func (r *postgresTransactionRepository) Append(ctx context.Context, username string, txns []model.Transaction) error {
	sql := `INSERT INTO transactions (username, ` + txnColumns + `)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	for i := range txns {
		t := &txns[i]
		_, err := r.db.Exec(ctx, sql, username, t.ID, t.Date, t.PostedDate, t.Description, t.DescriptionRaw,
			t.Amount, t.Currency, t.TxnType, t.Balance, t.Category, t.Notes, t.UserOverride,
			t.SourceName, t.SourceUploadID, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

func (r *postgresTransactionRepository) Update(ctx context.Context, username string, t *model.Transaction) error {
	sql := `UPDATE transactions SET date = $3, description = $4, amount = $5, category = $6, notes = $7, user_override = $8, updated_at = $9
            WHERE username = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, sql, username, t.ID, t.Date, t.Description, t.Amount, t.Category, t.Notes, t.UserOverride, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %q not found for user %q", t.ID, username)
	}
	return nil
}

func (r *postgresTransactionRepository) Delete(ctx context.Context, username, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE username = $1 AND id = $2`, username, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %q not found for user %q", id, username)
	}
	return nil
}

func (r *postgresTransactionRepository) ReplaceForUser(ctx context.Context, username string, txns []model.Transaction) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE username = $1`, username); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return r.Append(ctx, username, txns)
}
