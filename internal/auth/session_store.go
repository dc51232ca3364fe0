package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound means the refresh session expired, was revoked, or never existed.
var ErrSessionNotFound = errors.New("refresh session not found")

// SessionStore tracks live refresh tokens by their token id.
type SessionStore interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// Consume removes the session and returns its user id.
	Consume(ctx context.Context, tokenID string) (string, error)
	Revoke(ctx context.Context, tokenID string) error
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore stores refresh sessions in Redis.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(tokenID string) string {
	return "refresh:" + tokenID
}

func (s *redisSessionStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(tokenID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Consume(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.GetDel(ctx, sessionKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consume session: %w", err)
	}
	return userID, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
