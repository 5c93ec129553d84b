package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dotway-lab/questboard/config"
	"github.com/dotway-lab/questboard/migration"
	"github.com/dotway-lab/questboard/pkg/logger"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Quest: config.QuestConfigs{
			AppName:       "DotWay",
			NFTClaimBonus: 250,
			PostMaxLength: 1000,
		},
		Chain: config.ChainConfigs{
			Decimals: 10,
			Timeout:  time.Second,
		},
	}
}

// MockContext returns a context carrying test configs, a silent logger and a
// migrated in-memory sqlite database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// Every connection of an in-memory sqlite has its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithWallet(address string) context.Context {
	return xcontext.WithWalletAddress(MockContext(), address)
}
