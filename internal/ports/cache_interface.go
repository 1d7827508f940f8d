package ports

import (
	"context"

	"session-security/internal/model"
)

// ProfileCache : Redis слой. (nil, nil) означает промах
type ProfileCache interface {
	SetProfile(ctx context.Context, profile *model.UserProfile) error
	GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error)
	Ping(ctx context.Context) error
}
