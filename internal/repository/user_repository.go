package repository

import (
	"context"
	"database/sql"
	"errors"

	"session-security/config"
	"session-security/internal/model"
	"session-security/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user with this email already exists")
	ErrDatabaseUnavailable = errors.New("database is not configured")
)

type UserRepository struct {
	*config.Database
}

// NewUserRepository принимает nil, если база не настроена: тогда все методы
// возвращают ErrDatabaseUnavailable
func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

func (r *UserRepository) db() (*sqlx.DB, error) {
	if r.Database == nil || r.Database.DB == nil {
		return nil, ErrDatabaseUnavailable
	}
	return r.Database.DB, nil
}

// CreateUser : сохраняет нового пользователя, дубликат email даёт ErrUserExists
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO users (email, password_hash, name)
	VALUES ($1, $2, $3)
	RETURNING id, email, password_hash, name, is_active, created_at, updated_at
	`

	created := &model.User{}
	err = sqlx.GetContext(ctx, db, created, query, user.Email, user.PasswordHash, user.Name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUserExists
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByID : ищет активного пользователя по id
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, email, password_hash, name, is_active, created_at, updated_at
	FROM users WHERE id = $1 AND is_active = TRUE
	`
	var user model.User
	if err := sqlx.GetContext(ctx, db, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет активного пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, email, password_hash, name, is_active, created_at, updated_at
	FROM users WHERE email = $1 AND is_active = TRUE
	`
	var user model.User
	if err := sqlx.GetContext(ctx, db, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// UpdatePasswordHash : заменяет хэш после пересчёта с новыми параметрами
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	res, err := db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	if r.Database == nil {
		return ErrDatabaseUnavailable
	}
	return r.Database.Ping(ctx)
}
