package migration

import (
	"context"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// migrate0001 recomputes the level of users imported before the level was
// derived from xp.
func migrate0001(ctx context.Context) error {
	var users []entity.User
	if err := xcontext.DB(ctx).Find(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		level := entity.LevelOf(u.XP)
		if u.Level == level {
			continue
		}

		err := xcontext.DB(ctx).Model(&entity.User{}).
			Where("id=?", u.ID).
			Update("level", level).Error
		if err != nil {
			return err
		}
	}

	return nil
}
