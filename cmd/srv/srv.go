package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dotway-lab/questboard/config"
	"github.com/dotway-lab/questboard/internal/client/explorer"
	"github.com/dotway-lab/questboard/internal/domain"
	"github.com/dotway-lab/questboard/internal/domain/catalog"
	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/domain/statistic"
	"github.com/dotway-lab/questboard/internal/domain/verification"
	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/internal/repository"
	"github.com/dotway-lab/questboard/migration"
	"github.com/dotway-lab/questboard/pkg/kafka"
	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/logger"
	"github.com/dotway-lab/questboard/pkg/pubsub"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/substrate"
	"github.com/dotway-lab/questboard/pkg/token"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/dotway-lab/questboard/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	server *http.Server
	router *router.Router

	node        *snowflake.Node
	redisClient xredis.Client
	chainClient substrate.Client
	store       kvstore.Store
	publisher   pubsub.Publisher
	leaderboard statistic.Leaderboard
	tokenEngine token.Engine[model.AccessToken]

	catalog      *catalog.Catalog
	walletReader wallet.Reader
	verifier     verification.Verifier
	manager      *questboard.Manager

	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	followerRepo repository.FollowerRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	questDomain     domain.QuestDomain
	nftDomain       domain.NFTDomain
	walletDomain    domain.WalletDomain
	statisticDomain domain.StatisticDomain
	communityDomain domain.CommunityDomain

	// stops are called in reverse order when the server shuts down.
	stops []func(context.Context) error
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadSnowFlake() {
	var err error
	s.node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, s.node)
}

func (s *srv) loadRedisClient() {
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
	s.stops = append(s.stops, func(context.Context) error { return client.Close() })
}

func (s *srv) loadStore() {
	switch s.configs.Store.Backend {
	case "memory":
		s.store = kvstore.NewMemoryStore()
	case "redis":
		if s.redisClient == nil {
			panic("redis store backend needs redis.addr")
		}
		s.store = kvstore.NewRedisStore(s.redisClient)
	case "database", "":
		s.store = repository.NewKeyValueRepository()
	default:
		panic(fmt.Sprintf("unsupported store backend %q", s.configs.Store.Backend))
	}
}

func (s *srv) loadPublisher() {
	if len(s.configs.Kafka.Addrs) == 0 {
		s.publisher = pubsub.NewLogPublisher()
		return
	}

	publisher, err := kafka.NewPublisher(s.configs.Kafka.ClientID, s.configs.Kafka.Addrs)
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
	s.stops = append(s.stops, publisher.Stop)
}

func (s *srv) loadLeaderboard() {
	if s.redisClient != nil {
		s.leaderboard = statistic.New(s.redisClient)
	} else {
		s.leaderboard = statistic.NewMemory()
	}
}

func (s *srv) loadCatalog() {
	var err error
	if path := s.configs.Quest.CatalogPath; path != "" {
		s.catalog, err = catalog.Load(path)
	} else {
		s.catalog, err = catalog.Default()
	}

	if err != nil {
		panic(err)
	}
}

func (s *srv) loadWalletReader() {
	var explorerClient explorer.Client
	if len(s.configs.Chain.ExplorerEndpoints) > 0 {
		explorerClient = explorer.New(s.configs.Chain.ExplorerAPIKey, s.configs.Chain.ExplorerEndpoints...)
	}

	if len(s.configs.Chain.RPCEndpoints) > 0 {
		client := substrate.NewClient(s.configs.Chain.RPCEndpoints...)
		s.chainClient = client
		s.stops = append(s.stops, func(context.Context) error {
			client.Close()
			return nil
		})
	}

	s.walletReader = wallet.NewLookup(s.chainClient, explorerClient)
}

func (s *srv) loadVerifier() {
	factory := verification.NewFactory(
		verification.NewRandom(rand.NewSource(time.Now().UnixNano())),
		s.walletReader,
	)

	verifier, err := verification.NewRouter(s.ctx, factory, s.catalog.Quests())
	if err != nil {
		panic(err)
	}

	s.verifier = verifier
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.postRepo = repository.NewPostRepository()
	s.followerRepo = repository.NewFollowerRepository()
}

func (s *srv) loadManager() {
	s.manager = questboard.NewManager(
		s.catalog,
		s.store,
		s.verifier,
		s.userRepo,
		s.leaderboard,
		s.publisher,
	)
	s.stops = append(s.stops, func(context.Context) error {
		s.manager.CloseAll()
		return nil
	})
}

func (s *srv) loadDomains() {
	s.tokenEngine = token.NewEngine[model.AccessToken](s.configs.Auth.TokenSecret)

	s.authDomain = domain.NewAuthDomain(s.manager, s.tokenEngine)
	s.userDomain = domain.NewUserDomain(s.manager)
	s.questDomain = domain.NewQuestDomain(s.manager)
	s.nftDomain = domain.NewNFTDomain(s.manager)
	s.walletDomain = domain.NewWalletDomain(s.manager, s.walletReader)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard, s.userRepo)
	s.communityDomain = domain.NewCommunityDomain(s.manager, s.postRepo, s.followerRepo, s.userRepo)
}

func (s *srv) stop(ctx context.Context) {
	for i := len(s.stops) - 1; i >= 0; i-- {
		if err := s.stops[i](ctx); err != nil {
			s.logger.Warnf("Cannot stop a component: %v", err)
		}
	}
}
