package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/repository"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/utils"
)

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService is the sole mediator between callers and the persisted
// user collection: it validates input, hashes passwords, enforces
// uniqueness, and persists after every mutation.
type UserService interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*model.PublicUser, string, error)
	Authenticate(ctx context.Context, username, password string) (*model.PublicUser, string, error)
	GetProfile(ctx context.Context, username string) (*model.PublicUser, error)
	UpdateProfile(ctx context.Context, username string, update model.ProfileUpdate) (*model.PublicUser, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

// CreateAccountParams carries the signup fields.
type CreateAccountParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type userService struct {
	repo    repository.UserRepository
	hasher  *utils.Hasher
	jwtUtil *utils.JWTUtil
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, hasher *utils.Hasher, jwtUtil *utils.JWTUtil) UserService {
	return &userService{repo: repo, hasher: hasher, jwtUtil: jwtUtil}
}

// CreateAccount validates the signup fields, hashes the password, and
// persists the new record. The returned user never carries the hash.
func (s *userService) CreateAccount(ctx context.Context, params CreateAccountParams) (*model.PublicUser, string, error) {
	if err := model.ValidatePassword(params.Password); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.repo.FindByUsername(ctx, params.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrDuplicateUser
	}

	emailTaken, err := s.repo.EmailExists(ctx, params.Email, params.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, "", &model.ValidationError{Field: "email", Reason: "already registered"}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	pub := user.Public()
	return &pub, token, nil
}

// Authenticate verifies credentials, stamps last_login on success, and
// returns the record with a session token. A wrong password leaves
// last_login untouched.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.PublicUser, string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if !s.hasher.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	pub := user.Public()
	return &pub, token, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*model.PublicUser, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateProfile applies the allowed mutable fields and re-validates the
// whole record before persisting, so updates obey the same rules as
// creation. Username is immutable by construction.
func (s *userService) UpdateProfile(ctx context.Context, username string, update model.ProfileUpdate) (*model.PublicUser, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if update.Email != nil && *update.Email != user.Email {
		taken, err := s.repo.EmailExists(ctx, *update.Email, username)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, &model.ValidationError{Field: "email", Reason: "already registered"}
		}
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.MonthlySpendingLimit != nil {
		user.MonthlySpendingLimit = *update.MonthlySpendingLimit
	}
	if update.MonthlySavingsGoal != nil {
		user.MonthlySavingsGoal = *update.MonthlySavingsGoal
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	pub := user.Public()
	return &pub, nil
}

// ChangePassword verifies the old password and replaces the stored
// hash. A short new password fails validation and leaves the hash
// unchanged.
func (s *userService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.hasher.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := model.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
