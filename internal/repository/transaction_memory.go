package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// memoryTransactionRepository is an in-memory TransactionRepository used
// in tests as a stand-in for the file-backed store.
type memoryTransactionRepository struct {
	mu     sync.RWMutex
	byUser map[string][]model.Transaction
}

// NewMemoryTransactionRepository builds an in-memory transaction store.
func NewMemoryTransactionRepository() TransactionRepository {
	return &memoryTransactionRepository{byUser: make(map[string][]model.Transaction)}
}

func (r *memoryTransactionRepository) ListByUser(_ context.Context, username string) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txns := r.byUser[username]
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryTransactionRepository) FindByID(_ context.Context, username, id string) (*model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.byUser[username] {
		if t.ID == id {
			tc := t
			return &tc, nil
		}
	}
	return nil, nil
}

func (r *memoryTransactionRepository) Append(_ context.Context, username string, txns []model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[username] = append(r.byUser[username], txns...)
	return nil
}

func (r *memoryTransactionRepository) Update(_ context.Context, username string, t *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txns := r.byUser[username]
	for i := range txns {
		if txns[i].ID == t.ID {
			txns[i] = *t
			return nil
		}
	}
	return fmt.Errorf("transaction %q not found for user %q", t.ID, username)
}

func (r *memoryTransactionRepository) Delete(_ context.Context, username, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txns := r.byUser[username]
	for i := range txns {
		if txns[i].ID == id {
			r.byUser[username] = append(txns[:i:i], txns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %q not found for user %q", id, username)
}

func (r *memoryTransactionRepository) ReplaceForUser(_ context.Context, username string, txns []model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[username] = append([]model.Transaction{}, txns...)
	return nil
}
