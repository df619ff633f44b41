package ws

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		s.logger.Warn("empty client uuid header", zap.String("header", domain.ClientUuidHeader))
		http.Error(w, "empty '"+domain.ClientUuidHeader+"' header", http.StatusBadRequest)
		return
	}
	mode, err := domain.ParseMode(r.URL.Query().Get(domain.ModeQueryParam))
	if err != nil {
		s.logger.Warn("parse game mode", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade connection", zap.Error(err))
		return
	}
	s.logger.Info("new connection", zap.String("client uuid", clientUuid), zap.String("mode", string(mode)))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(r.Context(), client, mode); err != nil {
		s.logger.Error("handle client", zap.String("client uuid", clientUuid), zap.Error(err))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	status := s.sync.Status()
	resp := domain.HealthCheckResponse{
		ServerName:      s.name,
		ActiveSessions:  s.hub.ActiveSessions(),
		SessionsCreated: s.hub.SessionsCreated(),
		HealthyPeers:    status.HealthyPeers,
		Peers:           status.Peers,
		LastSync:        status.LastSync,
	}
	writeJson(w, resp, s.logger)
}

func (s *server) applyStates(w http.ResponseWriter, r *http.Request) {
	var records []domain.SessionRecord
	if err := jsoniter.NewDecoder(r.Body).Decode(&records); err != nil {
		s.logger.Warn("decode session records", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Info("sync states", zap.Int("sessions", len(records)))
	s.hub.ApplyStates(r.Context(), records)
}

func (s *server) playerStats(w http.ResponseWriter, r *http.Request) {
	playerUuid := strings.TrimSpace(r.PathValue("uuid"))
	if playerUuid == "" {
		http.Error(w, "empty player uuid", http.StatusBadRequest)
		return
	}
	stats, err := s.stats.Get(r.Context(), playerUuid)
	if err != nil {
		s.logger.Error("get player stats", zap.String("player uuid", playerUuid), zap.Error(err))
		http.Error(w, "could not get player stats", http.StatusInternalServerError)
		return
	}
	writeJson(w, stats, s.logger)
}

func writeJson(w http.ResponseWriter, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Warn("encode json response", zap.Error(err))
	}
}
