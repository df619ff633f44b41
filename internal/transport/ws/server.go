package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

type server struct {
	srv      *http.Server
	name     string
	hub      domain.HubUseCase
	sync     domain.SyncUseCase
	stats    domain.StatsRepository
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func New(addr string, name string, hub domain.HubUseCase, sync domain.SyncUseCase, stats domain.StatsRepository,
	logger *zap.Logger) *server {
	s := &server{
		name:  name,
		hub:   hub,
		sync:  sync,
		stats: stats,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/game", s.serveWs)
	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("POST /sync", s.applyStates)
	mux.HandleFunc("GET /stats/{uuid}", s.playerStats)
	return mux
}
