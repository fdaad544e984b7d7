package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	accountKeyPrefix = "account_session:"
)

// ErrSessionNotFound is returned when a token does not resolve to a live session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, accountID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// RedisSessionStore implements SessionStore on Redis. Each live session holds
// two keys: session:<token> -> account id, and account_session:<id> -> token,
// so a fresh sign-in can displace the previous session and reset its TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store with the given token lifetime.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Create invalidates any existing session for the account and mints a new
// token, so the expiry timer restarts from the current sign-in.
func (s *RedisSessionStore) Create(ctx context.Context, accountID uuid.UUID) (string, error) {
	accountKey := accountKeyPrefix + accountID.String()

	// Best effort: drop the previous session if one exists.
	if old, err := s.client.Get(ctx, accountKey).Result(); err == nil && old != "" {
		s.client.Del(ctx, sessionKeyPrefix+old)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, sessionKeyPrefix+token, accountID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	if err := s.client.Set(ctx, accountKey, token, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing account session mapping: %w", err)
	}

	return token, nil
}

// Get resolves a token to the account it authenticates.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrSessionNotFound
	}

	idStr, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("fetching session: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing session account id: %w", err)
	}

	return id, nil
}

// Delete removes a session and its account mapping.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionKey := sessionKeyPrefix + token
	if idStr, err := s.client.Get(ctx, sessionKey).Result(); err == nil && idStr != "" {
		s.client.Del(ctx, accountKeyPrefix+idStr)
	}

	return s.client.Del(ctx, sessionKey).Err()
}
