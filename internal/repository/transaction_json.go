package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// jsonTransactionRepository mirrors each user's transaction list to a
// JSON file mapping username -> []Transaction, rewritten whole on every
// mutation like the user store.
type jsonTransactionRepository struct {
	mu     sync.RWMutex
	path   string
	byUser map[string][]model.Transaction
}

// NewJSONTransactionRepository loads (or initializes) the transaction
// store at path.
func NewJSONTransactionRepository(path string) (TransactionRepository, error) {
	repo := &jsonTransactionRepository{path: path, byUser: make(map[string][]model.Transaction)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return repo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction store: %w", err)
	}
	if err := json.Unmarshal(data, &repo.byUser); err != nil {
		return nil, fmt.Errorf("failed to decode transaction store %s: %w", path, err)
	}
	return repo, nil
}

func (r *jsonTransactionRepository) save() error {
	data, err := json.MarshalIndent(r.byUser, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transaction store: %w", err)
	}
	return writeFileAtomic(r.path, data)
}

func (r *jsonTransactionRepository) ListByUser(_ context.Context, username string) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txns := r.byUser[username]
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *jsonTransactionRepository) FindByID(_ context.Context, username, id string) (*model.Transaction, error) {
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

func (r *jsonTransactionRepository) Append(_ context.Context, username string, txns []model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.byUser[username]
	r.byUser[username] = append(append([]model.Transaction{}, prev...), txns...)
	if err := r.save(); err != nil {
		r.byUser[username] = prev
		return err
	}
	return nil
}

func (r *jsonTransactionRepository) Update(_ context.Context, username string, t *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txns := r.byUser[username]
	for i := range txns {
		if txns[i].ID == t.ID {
			prev := txns[i]
			txns[i] = *t
			if err := r.save(); err != nil {
				txns[i] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("transaction %q not found for user %q", t.ID, username)
}

func (r *jsonTransactionRepository) Delete(_ context.Context, username, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txns := r.byUser[username]
	for i := range txns {
		if txns[i].ID == id {
			prev := r.byUser[username]
			r.byUser[username] = append(append([]model.Transaction{}, txns[:i]...), txns[i+1:]...)
			if err := r.save(); err != nil {
				r.byUser[username] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("transaction %q not found for user %q", id, username)
}

func (r *jsonTransactionRepository) ReplaceForUser(_ context.Context, username string, txns []model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.byUser[username]
	r.byUser[username] = append([]model.Transaction{}, txns...)
	if err := r.save(); err != nil {
		r.byUser[username] = prev
		return err
	}
	return nil
}
