package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"session-security/config"
	"session-security/internal/model"
	"session-security/internal/util"

	"github.com/redis/go-redis/v9"
)

var ErrCacheUnavailable = errors.New("cache is not configured")

// CacheRepository кэширует публичный профиль пользователя для /auth/me
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetProfile(ctx context.Context, profile *model.UserProfile) error {
	if r.client == nil {
		return ErrCacheUnavailable
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return util.LogError("ошибка сериализации профиля", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(profile.ID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if r.client == nil {
		return nil, nil
	}

	val, err := r.client.Client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения профиля из Redis", err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, util.LogError("ошибка десериализации профиля из кэша", err)
	}
	return &profile, nil
}

func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return ErrCacheUnavailable
	}
	return r.client.Ping(ctx)
}

func (r *CacheRepository) key(userID int64) string {
	return fmt.Sprintf("user:profile:%d", userID)
}
