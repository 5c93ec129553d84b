package statistic

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/dotway-lab/questboard/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type Entry struct {
	Address string `json:"address"`
	XP      uint64 `json:"xp"`
	Rank    int    `json:"rank"`
}

type Leaderboard interface {
	SetXP(ctx context.Context, address string, xp uint64) error

	// Rank returns the 1-based position of address ordered by XP, or 0 if the
	// address is not ranked.
	Rank(ctx context.Context, address string) (uint64, error)
	Top(ctx context.Context, n int) ([]Entry, error)
}

type redisLeaderboard struct {
	redisClient xredis.Client
}

func New(redisClient xredis.Client) *redisLeaderboard {
	return &redisLeaderboard{redisClient: redisClient}
}

func (l *redisLeaderboard) SetXP(ctx context.Context, address string, xp uint64) error {
	err := l.redisClient.ZAdd(ctx, common.RedisKeyXPLeaderboard, redis.Z{Member: address, Score: float64(xp)})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *redisLeaderboard) Rank(ctx context.Context, address string) (uint64, error) {
	rank, err := l.redisClient.ZRevRank(ctx, common.RedisKeyXPLeaderboard, address)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get rev rank redis: %v", err)
		return 0, errorx.Unknown
	}

	return rank + 1, nil
}

func (l *redisLeaderboard) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyXPLeaderboard, 0, n)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []Entry{}
	for i, z := range results {
		address, ok := z.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, Entry{Address: address, XP: uint64(z.Score), Rank: i + 1})
	}

	return entries, nil
}

type memoryLeaderboard struct {
	mutex sync.RWMutex
	xp    map[string]uint64
}

// NewMemory returns a process-local leaderboard, used when redis is not
// configured.
func NewMemory() *memoryLeaderboard {
	return &memoryLeaderboard{xp: map[string]uint64{}}
}

func (l *memoryLeaderboard) SetXP(ctx context.Context, address string, xp uint64) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.xp[address] = xp
	return nil
}

func (l *memoryLeaderboard) Rank(ctx context.Context, address string) (uint64, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if _, ok := l.xp[address]; !ok {
		return 0, nil
	}

	for i, e := range l.sorted() {
		if e.Address == address {
			return uint64(i + 1), nil
		}
	}

	return 0, nil
}

func (l *memoryLeaderboard) Top(ctx context.Context, n int) ([]Entry, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	entries := l.sorted()
	if n < len(entries) {
		entries = entries[:max(n, 0)]
	}

	return entries, nil
}

// sorted orders by XP descending, ties by address descending, the same order
// as a redis sorted set read in reverse.
func (l *memoryLeaderboard) sorted() []Entry {
	entries := make([]Entry, 0, len(l.xp))
	for address, xp := range l.xp {
		entries = append(entries, Entry{Address: address, XP: xp})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].Address > entries[j].Address
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
