package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"session-security/config"
	"session-security/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "name", "is_active", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepository(&config.Database{DB: sqlx.NewDb(db, "sqlmock")}), mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1 AND is_active = TRUE")).
			WithArgs("a@b.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "a@b.com", "$argon2id$hash", "Alice", true, now, now))

		user, err := repo.FindByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "$argon2id$hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("missing@b.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "missing@b.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.FindByEmail(ctx, "a@b.com")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND is_active = TRUE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(5, "e@x.com", "h", "Eve", true, now, now))

	user, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "e@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()
	input := &model.User{Email: "a@b.com", PasswordHash: "hash", Name: "Alice"}

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password_hash, name)")).
			WithArgs("a@b.com", "hash", "Alice").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(10, "a@b.com", "hash", "Alice", true, now, now))

		created, err := repo.CreateUser(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int64(10), created.ID)
		assert.True(t, created.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pq.Error{Code: uniqueViolation})

		_, err := repo.CreateUser(ctx, input)
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2")).
			WithArgs(int64(3), "new-hash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePasswordHash(ctx, 3, "new-hash"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, 3, "new-hash"), ErrUserNotFound)
	})
}

func TestUserRepository_WithoutDatabase(t *testing.T) {
	repo := NewUserRepository(nil)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	_, err = repo.CreateUser(ctx, &model.User{})
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	assert.ErrorIs(t, repo.Ping(ctx), ErrDatabaseUnavailable)
}

func TestCacheRepository_WithoutRedis(t *testing.T) {
	cache := NewCacheRepository(nil, time.Minute)
	ctx := context.Background()

	profile, err := cache.GetProfile(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, profile)
	assert.ErrorIs(t, cache.SetProfile(ctx, &model.UserProfile{ID: 1}), ErrCacheUnavailable)
	assert.Equal(t, "user:profile:42", cache.key(42))
}
