package flash

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Store over an existing redis client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func key(id string) string {
	return "flash:" + id
}

func (s *redisStore) Put(ctx context.Context, f Flash) (string, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(f)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, key(id), payload, TTL).Err(); err != nil {
		return "", err
	}

	return id, nil
}

func (s *redisStore) Take(ctx context.Context, id string) (*Flash, error) {
	payload, err := s.client.GetDel(ctx, key(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var f Flash
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return nil, err
	}

	return &f, nil
}
