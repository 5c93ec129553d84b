package kvstore

import (
	"context"
	"errors"

	"github.com/dotway-lab/questboard/pkg/xredis"
)

type redisStore struct {
	client xredis.Client
}

func NewRedisStore(client xredis.Client) *redisStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key)
	if errors.Is(err, xredis.ErrNil) {
		return "", ErrNotFound
	}

	return v, err
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value)
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key)
}
