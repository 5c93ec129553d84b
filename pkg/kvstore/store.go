package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a durable string key-value store. Values are opaque, callers
// usually put JSON in them.
type Store interface {
	// Get returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type prefixStore struct {
	prefix string
	inner  Store
}

// WithPrefix scopes every key of inner under prefix. It is used to give each
// device its own namespace inside a shared store.
func WithPrefix(inner Store, prefix string) Store {
	return &prefixStore{prefix: prefix, inner: inner}
}

func (s *prefixStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *prefixStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *prefixStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
