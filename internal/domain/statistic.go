package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/statistic"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/internal/repository"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
	userRepo    repository.UserRepository
}

func NewStatisticDomain(leaderboard statistic.Leaderboard, userRepo repository.UserRepository) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard, userRepo: userRepo}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit, err := limitOf(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	top, err := d.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	addresses := []string{}
	for _, e := range top {
		addresses = append(addresses, e.Address)
	}

	// Profiles only enrich the entries, the leaderboard is still served when
	// the database cannot be read.
	users := map[string]entity.User{}
	if xcontext.DB(ctx) != nil {
		records, err := d.userRepo.GetByWallets(ctx, addresses)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get users of leaderboard: %v", err)
		}

		for _, u := range records {
			users[u.WalletAddress] = u
		}
	}

	entries := []model.LeaderboardEntry{}
	for _, e := range top {
		entry := model.LeaderboardEntry{
			Address: e.Address,
			XP:      e.XP,
			Level:   entity.LevelOf(e.XP),
			Rank:    e.Rank,
		}

		if u, ok := users[e.Address]; ok {
			entry.Username = u.Username
			entry.Avatar = u.Avatar
		}

		entries = append(entries, entry)
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}
