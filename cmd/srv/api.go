package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dotway-lab/questboard/internal/middleware"
	"github.com/dotway-lab/questboard/pkg/prometheus"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if s.configs.Auth.TokenSecret == "" {
		return errors.New("auth.token_secret is required")
	}

	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadSnowFlake()
	s.loadRedisClient()
	s.loadStore()
	s.loadPublisher()
	s.loadLeaderboard()
	s.loadCatalog()
	s.loadWalletReader()
	s.loadVerifier()
	s.loadRepos()
	s.loadManager()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", s.server.Addr)
		if cfg.Cert != "" && cfg.Key != "" {
			errCh <- s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
		} else {
			errCh <- s.server.ListenAndServe()
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		s.logger.Infof("Shutting down server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := s.server.Shutdown(shutdownCtx); shutdownErr != nil {
		s.logger.Errorf("Cannot shutdown server: %v", shutdownErr)
	}
	s.stop(shutdownCtx)

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.WithSnowFlake(s.node))
	s.router.Before(middleware.NewAuthVerifier(s.tokenEngine).Middleware())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Handle("/metrics", prometheus.NewHandler())

	// Public API.
	{
		publicRouter := s.router.Branch()
		connectRouter := publicRouter.Branch()
		connectRouter.After(middleware.HandleSetAccessToken())
		router.POST(connectRouter, "/connect", s.authDomain.Connect)

		router.GET(publicRouter, "/getWalletAssets", s.walletDomain.GetAssets)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(publicRouter, "/getPosts", s.communityDomain.GetPosts)
		router.GET(publicRouter, "/getFollowers", s.communityDomain.GetFollowers)
		router.GET(publicRouter, "/getFollowing", s.communityDomain.GetFollowing)
	}

	// These APIs need the session of the access token.
	{
		authRouter := s.router.Branch()
		authRouter.Before(middleware.Authenticate())

		router.POST(authRouter, "/logout", s.authDomain.Logout)

		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/createProfile", s.userDomain.CreateProfile)
		router.POST(authRouter, "/updateProfile", s.userDomain.UpdateProfile)

		router.GET(authRouter, "/getQuests", s.questDomain.GetList)
		router.GET(authRouter, "/getQuest", s.questDomain.Get)
		router.POST(authRouter, "/startQuest", s.questDomain.Start)
		router.POST(authRouter, "/updateQuestProgress", s.questDomain.UpdateProgress)
		router.POST(authRouter, "/verifyQuest", s.questDomain.Verify)
		router.POST(authRouter, "/completeQuest", s.questDomain.Complete)

		router.GET(authRouter, "/getNFTs", s.nftDomain.GetList)
		router.POST(authRouter, "/claimNFT", s.nftDomain.Claim)

		router.POST(authRouter, "/createPost", s.communityDomain.CreatePost)
		router.POST(authRouter, "/follow", s.communityDomain.Follow)
		router.POST(authRouter, "/unfollow", s.communityDomain.Unfollow)
	}
}
