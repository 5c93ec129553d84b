package config

import (
	"fmt"
	"time"

	"github.com/dotway-lab/questboard/pkg/logger"
)

type Configs struct {
	Env string `toml:"env"`

	Log       logger.Config    `toml:"log"`
	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Store     StoreConfigs     `toml:"store"`
	Quest     QuestConfigs     `toml:"quest"`
	Chain     ChainConfigs     `toml:"chain"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// SqlitePath is only used by the sqlite driver.
	SqlitePath string `toml:"sqlite_path"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.SqlitePath
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type StoreConfigs struct {
	// Backend of the durable key-value store: "memory", "redis" or "database".
	Backend string `toml:"backend"`
}

type QuestConfigs struct {
	// CatalogPath overrides the embedded quest catalog when set.
	CatalogPath string `toml:"catalog_path"`

	AppName           string        `toml:"app_name"`
	VerificationDelay time.Duration `toml:"verification_delay"`
	NFTClaimBonus     uint64        `toml:"nft_claim_bonus"`
	PostMaxLength     int           `toml:"post_max_length"`
}

type ChainConfigs struct {
	RPCEndpoints      []string      `toml:"rpc_endpoints"`
	ExplorerEndpoints []string      `toml:"explorer_endpoints"`
	ExplorerAPIKey    string        `toml:"explorer_api_key"`
	Decimals          int32         `toml:"decimals"`
	Timeout           time.Duration `toml:"timeout"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addrs    []string `toml:"addrs"`
	ClientID string   `toml:"client_id"`
	Topic    string   `toml:"topic"`
}
