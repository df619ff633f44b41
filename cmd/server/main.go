package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/battleship/internal/adapters/redisstore"
	"github.com/kiryu-dev/battleship/internal/adapters/webapi"
	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/transport/ws"
	"github.com/kiryu-dev/battleship/internal/usecase/game"
	"github.com/kiryu-dev/battleship/internal/usecase/hub"
	"github.com/kiryu-dev/battleship/internal/usecase/synchronizer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./configs/config.yaml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	storage, err := redisstore.Connect(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Fatal("connect to redis", zap.Error(err))
	}
	defer func() {
		_ = storage.Close()
	}()

	var (
		sessions = redisstore.NewSessionRepository(storage, cfg.Redis.SessionTTL)
		stats    = redisstore.NewStatsRepository(storage)
		peers    = webapi.New()
		sync     = synchronizer.New(peers, sessions, cfg.Server.Name, cfg.Servers, logger)
		referee  = game.New(stats, cfg.Game, logger)
		matches  = hub.New(ctx, referee, cfg.Game.Rules(), cfg.Sync.Period, logger)
		server   = ws.New(cfg.Server.Addr, cfg.Server.Name, matches, sync, stats, logger)
	)

	records, err := sessions.List(ctx)
	if err != nil {
		logger.Warn("list stored sessions", zap.Error(err))
	}
	matches.ApplyStates(ctx, records)

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, groupCtx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-groupCtx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return server.ListenAndServe()
	})
	errGroup.Go(func() error {
		sync.Sync(groupCtx, matches.GamesStates())
		return nil
	})
	errGroup.Go(func() error {
		sync.CheckPeersHealth(groupCtx)
		return nil
	})
	errGroup.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server", zap.Error(err))
		}
		cancel()
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}
