package domain

import (
	"context"
	"time"
)

type SyncStatus struct {
	Peers        int
	HealthyPeers int
	LastSync     time.Time
}

type HealthCheckResponse struct {
	ServerName      string
	ActiveSessions  int
	SessionsCreated int64
	HealthyPeers    int
	Peers           int
	LastSync        time.Time
}

type SyncUseCase interface {
	Sync(ctx context.Context, statesChan <-chan []SessionRecord)
	CheckPeersHealth(ctx context.Context)
	Status() SyncStatus
}

type SyncRepository interface {
	Sync(ctx context.Context, addr string, records []SessionRecord) error
	HealthCheck(ctx context.Context, addr string) (*HealthCheckResponse, error)
}
