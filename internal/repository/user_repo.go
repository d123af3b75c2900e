package repository

import (
	"context"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// UserRepository defines operations for user data. FindByUsername returns
// (nil, nil) when no such user exists; the service layer decides whether
// that is an error.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// EmailExists reports whether any record other than excludeUsername
	// already uses the email.
	EmailExists(ctx context.Context, email, excludeUsername string) (bool, error)
}
