package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client, mode Mode) error
	GamesStates() <-chan []SessionRecord
	ApplyStates(ctx context.Context, records []SessionRecord)
	ActiveSessions() int
	SessionsCreated() int64
}

type SessionRepository interface {
	Save(ctx context.Context, record SessionRecord) error
	Get(ctx context.Context, uuid string) (SessionRecord, error)
	List(ctx context.Context) ([]SessionRecord, error)
	Delete(ctx context.Context, uuid string) error
}

type PlayerStats struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
}

type StatsRepository interface {
	AddWin(ctx context.Context, playerUuid string) error
	AddLoss(ctx context.Context, playerUuid string) error
	Get(ctx context.Context, playerUuid string) (PlayerStats, error)
}
