package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// jsonUserRepository keeps the full user collection in memory, mirrored to
// a JSON file mapping username -> record. Every mutation rewrites the
// whole file through a temp file and rename so a failed write cannot
// leave a corrupted store behind.
type jsonUserRepository struct {
	mu    sync.RWMutex
	path  string
	users map[string]model.User
}

// NewJSONUserRepository loads (or initializes) the user store at path.
// Records that fail validation are rejected up front rather than admitted
// into the collection.
func NewJSONUserRepository(path string) (UserRepository, error) {
	repo := &jsonUserRepository{path: path, users: make(map[string]model.User)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return repo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}

	if err := json.Unmarshal(data, &repo.users); err != nil {
		return nil, fmt.Errorf("failed to decode user store %s: %w", path, err)
	}
	for username, u := range repo.users {
		if u.Username != username {
			return nil, fmt.Errorf("user store %s: key %q does not match record username %q", path, username, u.Username)
		}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("user store %s: record %q: %w", path, username, err)
		}
	}
	return repo, nil
}

// save rewrites the whole collection. Caller must hold the write lock.
func (r *jsonUserRepository) save() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	return writeFileAtomic(r.path, data)
}

func (r *jsonUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user %q already exists", user.Username)
	}
	r.users[user.Username] = *user
	if err := r.save(); err != nil {
		delete(r.users, user.Username)
		return err
	}
	return nil
}

func (r *jsonUserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.users[user.Username]
	if !exists {
		return fmt.Errorf("user %q not found", user.Username)
	}
	r.users[user.Username] = *user
	if err := r.save(); err != nil {
		r.users[user.Username] = prev
		return err
	}
	return nil
}

func (r *jsonUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *jsonUserRepository) EmailExists(_ context.Context, email, excludeUsername string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for username, u := range r.users {
		if username != excludeUsername && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
