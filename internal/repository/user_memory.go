package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// memoryUserRepository is an in-memory UserRepository used in tests as a
// drop-in replacement for the file-backed store.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewMemoryUserRepository builds an in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]model.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user %q already exists", user.Username)
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; !exists {
		return fmt.Errorf("user %q not found", user.Username)
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepository) EmailExists(_ context.Context, email, excludeUsername string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for username, u := range r.users {
		if username != excludeUsername && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
