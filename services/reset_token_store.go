package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenPrefix = "pwreset:"

// ResetTokenStore issues and consumes time-boxed, single-use password
// reset tokens.
type ResetTokenStore interface {
	Issue(ctx context.Context, userID uint) (string, error)
	// Consume atomically removes the token and returns the user id it
	// was issued for, or 0 when the token is unknown or expired.
	Consume(ctx context.Context, token string) (uint, error)
}

type redisResetTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResetTokenStore(rdb *redis.Client) ResetTokenStore {
	return &redisResetTokenStore{rdb: rdb, ttl: time.Hour}
}

func (s *redisResetTokenStore) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	key := resetTokenPrefix + token
	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisResetTokenStore) Consume(ctx context.Context, token string) (uint, error) {
	// GETDEL makes the check-and-invalidate a single step, so a token
	// can never be redeemed twice.
	val, err := s.rdb.GetDel(ctx, resetTokenPrefix+token).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, nil
	}
	return uint(id), nil
}
