package repository

import (
	"context"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type FollowerRepository interface {
	Follow(ctx context.Context, follower, following string) error
	Unfollow(ctx context.Context, follower, following string) error
	GetFollowers(ctx context.Context, address string, offset, limit int) ([]entity.Follower, error)
	GetFollowing(ctx context.Context, address string, offset, limit int) ([]entity.Follower, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

// Follow is idempotent.
func (r *followerRepository) Follow(ctx context.Context, follower, following string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Follower{FollowerAddress: follower, FollowingAddress: following}).Error
}

func (r *followerRepository) Unfollow(ctx context.Context, follower, following string) error {
	return xcontext.DB(ctx).
		Where("follower_address=? AND following_address=?", follower, following).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) GetFollowers(ctx context.Context, address string, offset, limit int) ([]entity.Follower, error) {
	return r.page(ctx, "following_address", address, offset, limit)
}

func (r *followerRepository) GetFollowing(ctx context.Context, address string, offset, limit int) ([]entity.Follower, error) {
	return r.page(ctx, "follower_address", address, offset, limit)
}

// page lists the edges whose column equals address, newest first.
func (r *followerRepository) page(ctx context.Context, column, address string, offset, limit int) ([]entity.Follower, error) {
	var edges []entity.Follower
	if err := xcontext.DB(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: address}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Offset(offset).Limit(limit).
		Find(&edges).Error; err != nil {
		return nil, err
	}

	return edges, nil
}
