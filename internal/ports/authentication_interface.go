package ports

import (
	"context"

	"session-security/internal/model"
)

// LoginResult : выданная пара токенов и пользователь, для которого она выдана
type LoginResult struct {
	User   *model.User
	Tokens *model.TokenPair
}

type AuthenticationService interface {
	Login(ctx context.Context, email, password string, client model.ClientKind) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string, client model.ClientKind) (accessToken string, expiresIn int64, err error)
	// Logout всегда успешен, accessToken может быть пустым
	Logout(ctx context.Context, accessToken string, client model.ClientKind)
}
