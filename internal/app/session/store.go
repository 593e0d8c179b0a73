package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmdirect/internal/common"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists refresh tokens keyed by their opaque value.
type TokenStore interface {
	Save(ctx context.Context, token, userID, role string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (userID, role string, err error)
	Delete(ctx context.Context, token string) error
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func refreshKey(token string) string {
	return "session:refresh:" + token
}

func (s *redisTokenStore) Save(ctx context.Context, token, userID, role string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKey(token), userID+"|"+role, ttl).Err(); err != nil {
		return fmt.Errorf("redisTokenStore.Save: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Lookup(ctx context.Context, token string) (string, string, error) {
	val, err := s.rdb.Get(ctx, refreshKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", fmt.Errorf("refresh token unknown or expired: %w", common.ErrUnauthorized)
		}
		return "", "", fmt.Errorf("redisTokenStore.Lookup: %w", err)
	}
	for i := 0; i < len(val); i++ {
		if val[i] == '|' {
			return val[:i], val[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("malformed refresh token record: %w", common.ErrInternalServer)
}

func (s *redisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("redisTokenStore.Delete: %w", err)
	}
	return nil
}
