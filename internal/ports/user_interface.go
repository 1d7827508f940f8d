package ports

import (
	"context"

	"session-security/internal/model"
)

// UserRepository : SQL слой
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	Ping(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
	NeedsRehash(encodedHash string) bool
}

// CredentialVerifier возвращает пользователя либо общую ошибку аутентификации
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*model.User, error)
}

type UserService interface {
	CredentialVerifier
	Register(ctx context.Context, email, password, name string, client model.ClientKind) (*model.User, error)
	Profile(ctx context.Context, userID int64) (*model.UserProfile, error)
}
