package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
)

// Storage keeps the state a session is paying for, as JSON under "draft:<session>".
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(sessionID string) string {
	return "draft:" + sessionID
}

func (s *Storage) Get(ctx context.Context, sessionID string) (entity.State, error) {
	data, err := s.redis.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.State{}, errorz.ErrDraftNotFound
		}
		return entity.State{}, err
	}
	return decode(data)
}

func (s *Storage) Set(ctx context.Context, sessionID string, state entity.State, expiration time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(sessionID), data, expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, key(sessionID)).Err()
}

func decode(data []byte) (entity.State, error) {
	var state entity.State
	if err := json.Unmarshal(data, &state); err != nil {
		return entity.State{}, err
	}
	if state.Fields == nil {
		state.Fields = entity.FormFields{}
	}
	return state, nil
}
