package model

import (
	"fmt"
	"regexp"
	"time"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// User represents a registered account. PasswordHash is part of the
// persisted form but must never leave the service layer; handlers return
// PublicUser instead.
type User struct {
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"password_hash"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Phone                string    `json:"phone,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	LastLogin            time.Time `json:"last_login"`
	MonthlySpendingLimit int64     `json:"monthly_spending_limit"` // in cents, 0 = unset
	MonthlySavingsGoal   int64     `json:"monthly_savings_goal"`   // in cents, 0 = unset
	GoalStreakCount      int       `json:"goal_streak_count"`
}

// PublicUser is the sanitized view of a User returned to callers.
type PublicUser struct {
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Phone                string    `json:"phone,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	LastLogin            time.Time `json:"last_login"`
	MonthlySpendingLimit int64     `json:"monthly_spending_limit"`
	MonthlySavingsGoal   int64     `json:"monthly_savings_goal"`
	GoalStreakCount      int       `json:"goal_streak_count"`
}

// Public strips the credential material from a User.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:             u.Username,
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Phone:                u.Phone,
		CreatedAt:            u.CreatedAt,
		LastLogin:            u.LastLogin,
		MonthlySpendingLimit: u.MonthlySpendingLimit,
		MonthlySavingsGoal:   u.MonthlySavingsGoal,
		GoalStreakCount:      u.GoalStreakCount,
	}
}

// ValidationError reports which field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// fieldRule pairs a field name with a predicate and the reason reported
// when the predicate fails. Rules are evaluated uniformly for creation
// and update paths.
type fieldRule struct {
	field  string
	ok     func(u *User) bool
	reason string
}

var userRules = []fieldRule{
	{"username", func(u *User) bool { return usernameRe.MatchString(u.Username) },
		"must be 3-20 characters of letters, digits, and underscores"},
	{"email", func(u *User) bool { return emailRe.MatchString(u.Email) },
		"must be a valid email address"},
	{"password_hash", func(u *User) bool { return u.PasswordHash != "" },
		"must not be empty"},
	{"first_name", func(u *User) bool { return u.FirstName != "" },
		"must not be empty"},
	{"last_name", func(u *User) bool { return u.LastName != "" },
		"must not be empty"},
	{"monthly_spending_limit", func(u *User) bool { return u.MonthlySpendingLimit >= 0 },
		"must not be negative"},
	{"monthly_savings_goal", func(u *User) bool { return u.MonthlySavingsGoal >= 0 },
		"must not be negative"},
}

// Validate checks the record against the field rules. The same rules gate
// freshly created records, updated records, and records loaded from disk.
func (u *User) Validate() error {
	for _, r := range userRules {
		if !r.ok(u) {
			return &ValidationError{Field: r.field, Reason: r.reason}
		}
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters long", MinPasswordLength),
		}
	}
	return nil
}

// ProfileUpdate carries the mutable profile fields. Pointers distinguish
// "leave unchanged" from "set to this value".
type ProfileUpdate struct {
	Email                *string `json:"email,omitempty"`
	FirstName            *string `json:"first_name,omitempty"`
	LastName             *string `json:"last_name,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	MonthlySpendingLimit *int64  `json:"monthly_spending_limit,omitempty"`
	MonthlySavingsGoal   *int64  `json:"monthly_savings_goal,omitempty"`
}
