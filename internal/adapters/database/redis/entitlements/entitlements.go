package entitlements

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage marks sessions that paid for downloads. The mark expires with the key.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(sessionID string) string {
	return "entitled:" + sessionID
}

func (s *Storage) Get(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.redis.Exists(ctx, key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Storage) Set(ctx context.Context, sessionID string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(sessionID), time.Now().UTC().Format(time.RFC3339), expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, key(sessionID)).Err()
}
