package repository

import (
	"context"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByWallet(ctx context.Context, address string) (*entity.User, error)
	Upsert(ctx context.Context, data *entity.User) error
	GetByWallets(ctx context.Context, addresses []string) ([]entity.User, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) FindByWallet(ctx context.Context, address string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("wallet_address=?", address).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// Upsert inserts the user, or overwrites the mutable columns of the user
// having the same wallet address. The id and joined_at are kept.
func (r *userRepository) Upsert(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "avatar", "bio", "xp", "level",
				"twitter", "telegram", "discord", "email", "updated_at",
			}),
		}).
		Create(data).Error
}

func (r *userRepository) GetByWallets(ctx context.Context, addresses []string) ([]entity.User, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	var result []entity.User
	if err := xcontext.DB(ctx).Where("wallet_address IN (?)", addresses).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
