package synchronizer

import (
	"context"
	"fmt"
	"time"

	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	httpPrefix        = "http://"
	healthCheckPeriod = 5 * time.Second
	maxParallelPeers  = 8
)

type useCase struct {
	repo         domain.SyncRepository
	store        domain.SessionRepository
	addrs        map[string]string
	serverName   string
	lastSync     *atomic.Time
	healthyPeers *atomic.Int32
	logger       *zap.Logger
	ticker       *time.Ticker
}

// New builds the peer list from cfg, leaving out the server named serverName.
func New(repo domain.SyncRepository, store domain.SessionRepository, serverName string, cfg []config.ServerConfig,
	logger *zap.Logger) *useCase {
	addrs := make(map[string]string)
	for _, srv := range cfg {
		if srv.Host != serverName {
			addrs[srv.Host] = fmt.Sprintf("%s%s:%d", httpPrefix, srv.Host, srv.Port)
		}
	}
	logger.Info("defined servers", zap.String("server name", serverName), zap.Any("peers", addrs))
	return &useCase{
		repo:         repo,
		store:        store,
		addrs:        addrs,
		serverName:   serverName,
		lastSync:     atomic.NewTime(time.Time{}),
		healthyPeers: atomic.NewInt32(0),
		logger:       logger,
		ticker:       time.NewTicker(healthCheckPeriod),
	}
}

// Sync persists every batch of session records and pushes it to the peers.
func (u *useCase) Sync(ctx context.Context, statesChan <-chan []domain.SessionRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case records := <-statesChan:
			u.logger.Info("starting sync games states...", zap.Int("sessions", len(records)))
			u.persist(ctx, records)
			u.push(ctx, records)
			u.lastSync.Store(time.Now())
		}
	}
}

// persist saves running sessions and removes finished ones from the store.
func (u *useCase) persist(ctx context.Context, records []domain.SessionRecord) {
	if u.store == nil {
		return
	}
	for _, rec := range records {
		if rec.Status.Over() {
			if err := u.store.Delete(ctx, rec.Uuid); err != nil {
				u.logger.Warn("delete session", zap.String("game uuid", rec.Uuid), zap.Error(err))
			}
			continue
		}
		if err := u.store.Save(ctx, rec); err != nil {
			u.logger.Warn("save session", zap.String("game uuid", rec.Uuid), zap.Error(err))
		}
	}
}

func (u *useCase) push(ctx context.Context, records []domain.SessionRecord) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPeers)
	for host, addr := range u.addrs {
		host, addr := host, addr
		g.Go(func() error {
			if err := u.repo.Sync(ctx, addr, records); err != nil {
				u.logger.Warn("sync peer", zap.String("host", host), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// CheckPeersHealth polls the peers until ctx is canceled and keeps the
// number of healthy ones.
func (u *useCase) CheckPeersHealth(ctx context.Context) {
	defer u.ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-u.ticker.C:
			u.checkPeers(ctx)
		}
	}
}

func (u *useCase) checkPeers(ctx context.Context) {
	healthy := atomic.NewInt32(0)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPeers)
	for host, addr := range u.addrs {
		host, addr := host, addr
		g.Go(func() error {
			resp, err := u.repo.HealthCheck(ctx, addr)
			if err != nil {
				u.logger.Warn("peer health check", zap.String("host", host), zap.Error(err))
				return nil
			}
			healthy.Inc()
			u.logger.Debug("peer is healthy", zap.String("host", host), zap.Any("resp", resp))
			return nil
		})
	}
	_ = g.Wait()
	u.healthyPeers.Store(healthy.Load())
}

func (u *useCase) Status() domain.SyncStatus {
	return domain.SyncStatus{
		Peers:        len(u.addrs),
		HealthyPeers: int(u.healthyPeers.Load()),
		LastSync:     u.lastSync.Load(),
	}
}
