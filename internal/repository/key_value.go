package repository

import (
	"context"
	"errors"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyValueRepository is a kvstore.Store backed by the key_values table.
type keyValueRepository struct{}

func NewKeyValueRepository() *keyValueRepository {
	return &keyValueRepository{}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, error) {
	var record entity.KeyValue
	err := xcontext.DB(ctx).Where("`key`=?", key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kvstore.ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return record.Value, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key, value string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entity.KeyValue{Key: key, Value: value}).Error
}

func (r *keyValueRepository) Remove(ctx context.Context, key string) error {
	return xcontext.DB(ctx).Where("`key`=?", key).Delete(&entity.KeyValue{}).Error
}
