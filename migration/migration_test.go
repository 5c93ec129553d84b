package migration

import (
	"context"
	"testing"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return xcontext.WithDB(context.Background(), db)
}

func TestMigrate(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, Migrate(ctx))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Migration{}).Count(&count).Error)
	require.Equal(t, int64(len(Migrators)), count)

	// Running again is a no-op.
	require.NoError(t, Migrate(ctx))
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Migration{}).Count(&count).Error)
	require.Equal(t, int64(len(Migrators)), count)
}

func TestMigrate0001_RecomputesLevel(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, AutoMigrate(ctx))

	require.NoError(t, xcontext.DB(ctx).Create(&entity.User{
		Base:          entity.Base{ID: "user1"},
		WalletAddress: "1abc",
		XP:            2500,
		Level:         1,
	}).Error)

	require.NoError(t, Run(ctx, "0001"))

	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", "user1").Error)
	require.Equal(t, uint64(3), user.Level)
}

func TestRun_UnknownVersion(t *testing.T) {
	require.Error(t, Run(newContext(t), "9999"))
}
