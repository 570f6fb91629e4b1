// File: services/engine/sessionStore.go
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:session:"

// SessionStore holds live conversation state between turns. Entries expire
// after the inactivity window; expiry is only ever observed at the start of
// a turn, never mid-processing.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*models.Session, error)
	Set(ctx context.Context, userID string, session *models.Session) error
	Clear(ctx context.Context, userID string) error
}

// RedisSessionStore backs SessionStore with a TTL'd Redis key per user, so
// the periodic sweep of stale sessions is delegated to Redis itself.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*models.Session, error) {
	key := sessionPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, userID string, session *models.Session) error {
	key := sessionPrefix + userID
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, userID string) error {
	key := sessionPrefix + userID
	return s.client.Del(ctx, key).Err()
}
