package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/repository"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxnService(t *testing.T, rulesJSON string) TransactionService {
	t.Helper()
	var cr *rules.CategoryRules
	if rulesJSON != "" {
		var err error
		cr, err = rules.Parse(strings.NewReader(rulesJSON))
		require.NoError(t, err)
	}
	return NewTransactionService(repository.NewMemoryTransactionRepository(), cr)
}

func TestTransactionService_CreateAndGet(t *testing.T) {
	svc := newTxnService(t, "")
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{
		Description: "Coffee Shop #0412",
		Amount:      -450,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "manual", created.SourceName)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, model.CategoryUncategorized, created.Category)
	assert.Equal(t, "Coffee Shop #0412", created.DescriptionRaw)
	assert.False(t, created.Date.IsZero())

	got, err := svc.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, "alice", "missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestTransactionService_Create_AppliesRules(t *testing.T) {
	svc := newTxnService(t, `{"Coffee": ["coffee"]}`)
	ctx := context.Background()

	auto, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "COFFEE SHOP", Amount: -450})
	require.NoError(t, err)
	assert.Equal(t, "Coffee", auto.Category)
	assert.False(t, auto.UserOverride)

	// An explicit category wins over the rules and is marked manual.
	manual, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "COFFEE SHOP", Amount: -450, Category: "Treats"})
	require.NoError(t, err)
	assert.Equal(t, "Treats", manual.Category)
	assert.True(t, manual.UserOverride)
}

func TestTransactionService_ListFilters(t *testing.T) {
	svc := newTxnService(t, "")
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "salary", Amount: 500000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "rent", Amount: -150000, Category: "Housing"})
	require.NoError(t, err)

	spending := true
	got, err := svc.List(ctx, "alice", model.TransactionFilters{Spending: &spending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Housing", got[0].Category)

	got, err = svc.List(ctx, "bob", model.TransactionFilters{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTransactionService_UpdateDelete(t *testing.T) {
	svc := newTxnService(t, "")
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "rent", Amount: -150000})
	require.NoError(t, err)

	newAmount := int64(-160000)
	updated, err := svc.Update(ctx, "alice", created.ID, model.UpdateTransactionRequest{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(-160000), updated.Amount)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "alice", created.ID), ErrTransactionNotFound)
}

func TestTransactionService_SetCategoryAndNotes(t *testing.T) {
	svc := newTxnService(t, "")
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "mystery charge", Amount: -999})
	require.NoError(t, err)

	got, err := svc.SetCategory(ctx, "alice", created.ID, "Fees")
	require.NoError(t, err)
	assert.Equal(t, "Fees", got.Category)
	assert.True(t, got.UserOverride)

	// Clearing the category falls back to the default bucket.
	got, err = svc.SetCategory(ctx, "alice", created.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryUncategorized, got.Category)

	long := strings.Repeat("x", model.MaxNoteLength+100)
	got, err = svc.SetNotes(ctx, "alice", created.ID, long)
	require.NoError(t, err)
	assert.Len(t, got.Notes, model.MaxNoteLength)
}

func TestTransactionService_ImportStatement(t *testing.T) {
	svc := newTxnService(t, `{"Coffee": ["starbucks"]}`)
	ctx := context.Background()

	csvData := `"03/12/2025","-45.67","*","","STARBUCKS STORE 0412"
"03/13/2025","1500.00","*","","DIRECT DEPOSIT PAYROLL"`

	result, err := svc.ImportStatement(ctx, "alice", "checking.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, "wells-fargo", result.Bank)
	assert.Equal(t, 2, result.Imported)
	assert.True(t, strings.HasPrefix(result.UploadID, "upload-"))

	// Ids are namespaced by upload so repeat imports cannot collide.
	assert.Equal(t, result.UploadID+"/row:1", result.Transactions[0].ID)
	assert.Equal(t, "Coffee", result.Transactions[0].Category)
	assert.Equal(t, model.CategoryUncategorized, result.Transactions[1].Category)

	listed, err := svc.List(ctx, "alice", model.TransactionFilters{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestTransactionService_ImportStatement_Empty(t *testing.T) {
	svc := newTxnService(t, "")

	_, err := svc.ImportStatement(context.Background(), "alice", "chase.csv", strings.NewReader("Date,Description,Amount\n"))
	assert.ErrorIs(t, err, ErrEmptyStatement)
}

func TestTransactionService_Recategorize(t *testing.T) {
	svc := newTxnService(t, `{"Coffee": ["starbucks"], "Streaming": ["netflix"]}`)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "starbucks", Amount: -450, Category: "Dining"})
	require.NoError(t, err)
	uncat, err := svc.Create(ctx, "alice", model.CreateTransactionRequest{Description: "payment 99999 netflix", Amount: -1549})
	require.NoError(t, err)
	// Force it back to uncategorized to simulate a rule added later.
	_, err = svc.SetCategory(ctx, "alice", uncat.ID, "")
	require.NoError(t, err)

	// Non-overwrite pass leaves the manual edits alone.
	changed, err := svc.Recategorize(ctx, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	changed, err = svc.Recategorize(ctx, "alice", true)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	listed, err := svc.List(ctx, "alice", model.TransactionFilters{})
	require.NoError(t, err)
	cats := map[string]bool{}
	for _, txn := range listed {
		cats[txn.Category] = true
	}
	assert.True(t, cats["Coffee"])
	assert.True(t, cats["Streaming"])
}

func TestTransactionService_RecategorizeWithoutRules(t *testing.T) {
	svc := newTxnService(t, "")
	changed, err := svc.Recategorize(context.Background(), "alice", false)
	assert.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestTransactionService_CreateDefaultsDate(t *testing.T) {
	svc := newTxnService(t, "")

	created, err := svc.Create(context.Background(), "alice", model.CreateTransactionRequest{Description: "x", Amount: -1})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created.Date, time.Minute)
}
