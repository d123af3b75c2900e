package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the Postgres repositories use. It is
// also satisfied by pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type postgresUserRepository struct {
	db DB
}

// NewPostgresUserRepository creates a UserRepository backed by PostgreSQL,
// for deployments that outgrow the flat-file store.
func NewPostgresUserRepository(db DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, email, password_hash, first_name, last_name, phone, created_at, last_login, monthly_spending_limit, monthly_savings_goal, goal_streak_count)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, sql, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Phone, user.CreatedAt, user.LastLogin, user.MonthlySpendingLimit, user.MonthlySavingsGoal, user.GoalStreakCount)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *model.User) error {
	sql := `UPDATE users SET email = $2, password_hash = $3, first_name = $4, last_name = $5, phone = $6,
            last_login = $7, monthly_spending_limit = $8, monthly_savings_goal = $9, goal_streak_count = $10
            WHERE username = $1`
	tag, err := r.db.Exec(ctx, sql, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Phone, user.LastLogin, user.MonthlySpendingLimit, user.MonthlySavingsGoal, user.GoalStreakCount)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %q not found", user.Username)
	}
	return nil
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT username, email, password_hash, first_name, last_name, phone, created_at, last_login, monthly_spending_limit, monthly_savings_goal, goal_streak_count
            FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(&user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Phone, &user.CreatedAt, &user.LastLogin,
		&user.MonthlySpendingLimit, &user.MonthlySavingsGoal, &user.GoalStreakCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) EmailExists(ctx context.Context, email, excludeUsername string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND username <> $2)`
	if err := r.db.QueryRow(ctx, sql, email, excludeUsername).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
