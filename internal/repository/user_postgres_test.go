package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserMock(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresUserRepository(mock)
}

func TestPostgresUserRepository_Create(t *testing.T) {
	mock, repo := newUserMock(t)
	user := testUser("alice")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
			user.Phone, user.CreatedAt, user.LastLogin, user.MonthlySpendingLimit,
			user.MonthlySavingsGoal, user.GoalStreakCount).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	mock, repo := newUserMock(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"username", "email", "password_hash", "first_name", "last_name",
		"phone", "created_at", "last_login", "monthly_spending_limit", "monthly_savings_goal", "goal_streak_count"}).
		AddRow("alice", "alice@example.com", "deadbeef", "Alice", "Smith", "", now, now, int64(0), int64(0), 0)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, email, password_hash`)).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock, repo := newUserMock(t)

	rows := pgxmock.NewRows([]string{"username", "email", "password_hash", "first_name", "last_name",
		"phone", "created_at", "last_login", "monthly_spending_limit", "monthly_savings_goal", "goal_streak_count"})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, email, password_hash`)).
		WithArgs("ghost").
		WillReturnRows(rows)

	got, err := repo.FindByUsername(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Update_NotFound(t *testing.T) {
	mock, repo := newUserMock(t)
	user := testUser("ghost")

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
			user.Phone, user.LastLogin, user.MonthlySpendingLimit, user.MonthlySavingsGoal, user.GoalStreakCount).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.Error(t, repo.Update(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_EmailExists(t *testing.T) {
	mock, repo := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("alice@example.com", "").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "alice@example.com", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
