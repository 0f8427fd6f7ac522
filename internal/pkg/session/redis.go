package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/framevault/framevault-api/internal/pkg/token"
)

const keyPrefix = "session:"

// RedisStore implements Store on Redis with per-key TTL expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID, err := token.NewSessionID()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, userID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		// Corrupt entry; drop it rather than serve it.
		_ = s.client.Del(ctx, keyPrefix+sessionID).Err()
		return uuid.Nil, ErrNotFound
	}
	return userID, nil
}

func (s *RedisStore) Refresh(ctx context.Context, sessionID string) error {
	ok, err := s.client.Expire(ctx, keyPrefix+sessionID, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
