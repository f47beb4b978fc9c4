package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an idle session keeps its clicked region.
const sessionTTL = 24 * time.Hour

const keyPrefix = "session:state:"

// RedisStore keeps session state in Redis so selections survive process
// restarts and are shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an open Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenClient opens a Redis client for the given address, or nil when the
// address is empty. Callers treat a nil client as "store disabled".
func OpenClient(addr, pass string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	state, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: failed to read state: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, state string) error {
	if err := s.client.Set(ctx, keyPrefix+sessionID, state, sessionTTL).Err(); err != nil {
		return fmt.Errorf("session: failed to write state: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session: failed to clear state: %w", err)
	}
	return nil
}
