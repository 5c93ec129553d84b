package migration

import (
	"context"
	"errors"
	"sort"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type Migrator func(ctx context.Context) error

var Migrators = map[string]Migrator{
	"0000": migrate0000,
	"0001": migrate0001,
}

// AutoMigrate creates every table with the latest schema. When this migrator
// is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.KeyValue{},
		&entity.Post{},
		&entity.Follower{},
		&entity.Migration{},
	)
}

// Migrate runs every migrator which has not been recorded yet, in version
// order.
func Migrate(ctx context.Context) error {
	versions := make([]string, 0, len(Migrators))
	for version := range Migrators {
		versions = append(versions, version)
	}
	sort.Strings(versions)

	for _, version := range versions {
		if err := Run(ctx, version); err != nil {
			return err
		}
	}

	return nil
}

// Run applies one migrator if it has not been applied before.
func Run(ctx context.Context, version string) error {
	migrator, ok := Migrators[version]
	if !ok {
		return errors.New("not found version " + version)
	}

	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	err := xcontext.DB(ctx).Take(&entity.Migration{}, "version=?", version).Error
	if err == nil {
		xcontext.Logger(ctx).Debugf("Migration %s has been applied before", version)
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := migrator(ctx); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Applied migration %s", version)
	return xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error
}
