package xredis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get and ZRevRank when the key or member does not
// exist.
var ErrNil = redis.Nil

type Client interface {
	Del(ctx context.Context, key ...string) error

	// Sorted set
	ZAdd(ctx context.Context, key string, z redis.Z) error
	ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRank(ctx context.Context, key string, member string) (uint64, error)

	// Single value
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

type client struct {
	redisClient *redis.Client
}

// NewClient connects to the redis of the configs. The address is either
// host:port or a redis:// url.
func NewClient(ctx context.Context) (*client, error) {
	addr := xcontext.Configs(ctx).Redis.Addr

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		var err error
		if opts, err = redis.ParseURL(addr); err != nil {
			return nil, err
		}
	}

	opts.MaxRetries = 5
	opts.MinRetryBackoff = 8 * time.Millisecond
	opts.MaxRetryBackoff = 512 * time.Millisecond
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10

	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

func (c *client) Del(ctx context.Context, key ...string) error {
	err := c.redisClient.Del(ctx, key...).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}

	return err
}

func (c *client) ZAdd(ctx context.Context, key string, z redis.Z) error {
	return c.redisClient.ZAdd(ctx, key, z).Err()
}

// ZRevRangeWithScores returns at most limit members from the highest score,
// skipping offset members.
func (c *client) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if limit <= 0 {
		return []redis.Z{}, nil
	}

	return c.redisClient.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
}

func (c *client) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	return c.redisClient.ZRevRank(ctx, key, member).Uint64()
}

func (c *client) Set(ctx context.Context, key, value string) error {
	return c.redisClient.Set(ctx, key, value, 0).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}
