package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dotway-lab/questboard/config"
	"github.com/dotway-lab/questboard/pkg/logger"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

const envPrefix = "QUESTBOARD_"

func defaultConfigs() config.Configs {
	return config.Configs{
		Env: "local",
		Log: logger.Config{
			Level:          "info",
			Format:         "text",
			FileMaxSizeMB:  100,
			FileMaxBackups: 3,
			FileMaxAgeDays: 28,
		},
		Database: config.DatabaseConfigs{
			Driver:     "sqlite",
			SqlitePath: "questboard.db",
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Store: config.StoreConfigs{Backend: "database"},
		Quest: config.QuestConfigs{
			AppName:           "DotWay",
			VerificationDelay: 1500 * time.Millisecond,
			NFTClaimBonus:     250,
			PostMaxLength:     1000,
		},
		Chain: config.ChainConfigs{
			Decimals: 10,
			Timeout:  10 * time.Second,
		},
		Kafka: config.KafkaConfigs{
			ClientID: "questboard",
			Topic:    "questboard.events",
		},
	}
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg := defaultConfigs()
	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return fmt.Errorf("cannot decode config %s: %w", path, err)
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return err
	}

	s.configs = &cfg
	s.logger = logger.New(cfg.Log)
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
	return nil
}

// overrideFromEnv applies QUESTBOARD_* variables on top of the file config.
func overrideFromEnv(cfg *config.Configs) error {
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.FilePath = getEnv("LOG_FILE", cfg.Log.FilePath)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("DB_NAME", cfg.Database.Database)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.SqlitePath = getEnv("DB_SQLITE_PATH", cfg.Database.SqlitePath)

	cfg.ApiServer.Host = getEnv("API_HOST", cfg.ApiServer.Host)
	cfg.ApiServer.Port = getEnv("API_PORT", cfg.ApiServer.Port)
	cfg.ApiServer.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", cfg.ApiServer.AllowedOrigins)

	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Store.Backend = getEnv("STORE_BACKEND", cfg.Store.Backend)
	cfg.Quest.CatalogPath = getEnv("CATALOG_PATH", cfg.Quest.CatalogPath)

	cfg.Chain.RPCEndpoints = getEnvList("RPC_ENDPOINTS", cfg.Chain.RPCEndpoints)
	cfg.Chain.ExplorerEndpoints = getEnvList("EXPLORER_ENDPOINTS", cfg.Chain.ExplorerEndpoints)
	cfg.Chain.ExplorerAPIKey = getEnv("EXPLORER_API_KEY", cfg.Chain.ExplorerAPIKey)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Kafka.Addrs = getEnvList("KAFKA_ADDRS", cfg.Kafka.Addrs)
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", cfg.Kafka.Topic)

	var err error
	cfg.Quest.VerificationDelay, err = getEnvDuration("VERIFICATION_DELAY", cfg.Quest.VerificationDelay)
	if err != nil {
		return err
	}

	cfg.Auth.AccessToken.Expiration, err = getEnvDuration("TOKEN_EXPIRATION", cfg.Auth.AccessToken.Expiration)
	if err != nil {
		return err
	}

	if v, ok := os.LookupEnv(envPrefix + "NFT_CLAIM_BONUS"); ok {
		cfg.Quest.NFTClaimBonus, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sNFT_CLAIM_BONUS: %w", envPrefix, err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		return v
	}

	return fallback
}

// getEnvList splits a comma separated variable.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback
	}

	var list []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}

	return d, nil
}
