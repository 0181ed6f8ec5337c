package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

/* Redis implementation of session.Store
 * One string key per session value: session:{session_id}:{key}
 * Every write refreshes the key's TTL so idle sessions expire
 */

const keyPrefix = "session"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to Redis and checks the connection
func NewStore(addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewStoreWithClient(client, ttl), nil
}

// NewStoreWithClient wraps an existing client
func NewStoreWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func key(sessionID, name string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, sessionID, name)
}

// Get returns the session value, 0 if the key is missing or expired
func (s *Store) Get(ctx context.Context, sessionID, name string) (int64, error) {
	v, err := s.client.Get(ctx, key(sessionID, name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting session value: %w", err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, sessionID, name string, value int64) error {
	if err := s.client.Set(ctx, key(sessionID, name), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("setting session value: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
