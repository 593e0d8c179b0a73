package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSignupLimiter enforces the signup cooldown with SET NX: the first
// attempt claims the key for the cooldown window, later attempts see it and
// are refused until the TTL runs out.
type redisSignupLimiter struct {
	rdb      *redis.Client
	cooldown time.Duration
}

func NewRedisSignupLimiter(rdb *redis.Client, cooldown time.Duration) SignupLimiter {
	return &redisSignupLimiter{rdb: rdb, cooldown: cooldown}
}

func (l *redisSignupLimiter) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, "signup:cooldown:"+email, "1", l.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("redisSignupLimiter.Allow: %w", err)
	}
	return ok, nil
}

type redisOTPStore struct {
	rdb *redis.Client
}

func NewRedisOTPStore(rdb *redis.Client) OTPStore {
	return &redisOTPStore{rdb: rdb}
}

func (s *redisOTPStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, "otp:"+phone, code, ttl).Err(); err != nil {
		return fmt.Errorf("redisOTPStore.Put: %w", err)
	}
	return nil
}

func (s *redisOTPStore) Consume(ctx context.Context, phone string) (string, error) {
	code, err := s.rdb.GetDel(ctx, "otp:"+phone).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redisOTPStore.Consume: %w", err)
	}
	return code, nil
}

type redisConfirmationStore struct {
	rdb *redis.Client
}

func NewRedisConfirmationStore(rdb *redis.Client) ConfirmationStore {
	return &redisConfirmationStore{rdb: rdb}
}

func (s *redisConfirmationStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, "confirm:"+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisConfirmationStore.Put: %w", err)
	}
	return nil
}

func (s *redisConfirmationStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, "confirm:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redisConfirmationStore.Consume: %w", err)
	}
	return userID, nil
}
