package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals an unknown or expired refresh token.
var ErrSessionNotFound = errors.New("session not found")

const refreshTokenPrefix = "refresh:"

// SessionRepository stores opaque refresh tokens. Tokens expire via TTL and
// are consumed (deleted) on rotation so each one is single-use.
type SessionRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository returns a Redis-backed implementation.
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshTokenPrefix+token, userID, ttl).Err()
}

func (r *redisSessionRepository) Consume(ctx context.Context, token string) (string, error) {
	key := refreshTokenPrefix + token
	userID, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, refreshTokenPrefix+token).Err()
}
