package repository

import (
	"context"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

type GetListPostFilter struct {
	AuthorAddresses []string
	Offset          int
	Limit           int
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	if data.ID == 0 {
		data.ID = xcontext.SnowFlake(ctx).Generate().Int64()
	}

	return xcontext.DB(ctx).Create(data).Error
}

// GetList returns the newest posts first. Snowflake ids are ordered by
// creation time.
func (r *postRepository) GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error) {
	tx := xcontext.DB(ctx).Model(&entity.Post{}).
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if len(filter.AuthorAddresses) > 0 {
		tx = tx.Where("author_address IN (?)", filter.AuthorAddresses)
	}

	var result []entity.Post
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
