package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxnMock(t *testing.T) (pgxmock.PgxPoolIface, TransactionRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresTransactionRepository(mock)
}

func TestPostgresTransactionRepository_Append(t *testing.T) {
	mock, repo := newTxnMock(t)
	txn := testTxn("a", 1, -500)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transactions`)).
		WithArgs("alice", txn.ID, txn.Date, txn.PostedDate, txn.Description, txn.DescriptionRaw,
			txn.Amount, txn.Currency, txn.TxnType, txn.Balance, txn.Category, txn.Notes,
			txn.UserOverride, txn.SourceName, txn.SourceUploadID, txn.CreatedAt, txn.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Append(context.Background(), "alice", []model.Transaction{txn}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransactionRepository_ListByUser(t *testing.T) {
	mock, repo := newTxnMock(t)
	txn := testTxn("a", 1, -500)

	rows := pgxmock.NewRows([]string{"id", "date", "posted_date", "description", "description_raw",
		"amount", "currency", "txn_type", "balance", "category", "notes", "user_override",
		"source_name", "source_upload_id", "created_at", "updated_at"}).
		AddRow(txn.ID, txn.Date, txn.PostedDate, txn.Description, txn.DescriptionRaw,
			txn.Amount, txn.Currency, txn.TxnType, txn.Balance, txn.Category, txn.Notes,
			txn.UserOverride, txn.SourceName, txn.SourceUploadID, txn.CreatedAt, txn.UpdatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, date, posted_date`)).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, txn.ID, got[0].ID)
	assert.Equal(t, txn.Amount, got[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransactionRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newTxnMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE username = $1 AND id = $2`)).
		WithArgs("alice", "ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.Error(t, repo.Delete(context.Background(), "alice", "ghost"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
