package redisstore

import (
	"context"

	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix = "stats:"
	winsField      = "wins"
	lossesField    = "losses"
)

type statsRepository struct {
	cli *redis.Client
}

func NewStatsRepository(cli *redis.Client) statsRepository {
	return statsRepository{cli: cli}
}

type dbStats struct {
	Wins   int64 `redis:"wins"`
	Losses int64 `redis:"losses"`
}

func (r statsRepository) AddWin(ctx context.Context, playerUuid string) error {
	if err := r.cli.HIncrBy(ctx, statsKeyPrefix+playerUuid, winsField, 1).Err(); err != nil {
		return errors.WithMessage(err, "increment wins")
	}
	return nil
}

func (r statsRepository) AddLoss(ctx context.Context, playerUuid string) error {
	if err := r.cli.HIncrBy(ctx, statsKeyPrefix+playerUuid, lossesField, 1).Err(); err != nil {
		return errors.WithMessage(err, "increment losses")
	}
	return nil
}

// Get returns zero counters for players that never finished a game.
func (r statsRepository) Get(ctx context.Context, playerUuid string) (domain.PlayerStats, error) {
	var stats dbStats
	err := r.cli.HGetAll(ctx, statsKeyPrefix+playerUuid).Scan(&stats)
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.PlayerStats{}, errors.WithMessage(err, "get player stats")
	}
	return domain.PlayerStats{
		Wins:   stats.Wins,
		Losses: stats.Losses,
	}, nil
}
