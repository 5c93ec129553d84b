package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/dotway-lab/questboard/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// MockRedisClient calls the XFunc fields when they are set. Otherwise it
// behaves like a tiny in-memory redis.
type MockRedisClient struct {
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)
	GetFunc                 func(ctx context.Context, key string) (string, error)
	SetFunc                 func(ctx context.Context, key string, value string) error
	DelFunc                 func(ctx context.Context, key ...string) error

	mutex  sync.Mutex
	values map[string]string
	zsets  map[string]map[string]float64
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, k := range key {
		delete(m.values, k)
		delete(m.zsets, k)
	}

	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.zsets == nil {
		m.zsets = map[string]map[string]float64{}
	}
	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}

	member, _ := z.Member.(string)
	m.zsets[key][member] = z.Score
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	sorted := m.sorted(key)
	if offset >= len(sorted) {
		return []redis.Z{}, nil
	}

	return sorted[offset:min(offset+limit, len(sorted))], nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, xredis.ErrNil
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", xredis.ErrNil
	}

	return value, nil
}

// sorted orders the members like redis does for reversed ranges: by score,
// then by member, both descending.
func (m *MockRedisClient) sorted(key string) []redis.Z {
	result := []redis.Z{}
	for member, score := range m.zsets[key] {
		result = append(result, redis.Z{Member: member, Score: score})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Member.(string) > result[j].Member.(string)
	})

	return result
}
