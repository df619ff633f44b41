package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	stats  domain.StatsRepository
	cfg    config.GameConfig
	logger *zap.Logger
}

func New(stats domain.StatsRepository, cfg config.GameConfig, logger *zap.Logger) useCase {
	return useCase{
		stats:  stats,
		cfg:    cfg,
		logger: logger,
	}
}

// Play referees the match until it is over or ctx is canceled. It is the
// only goroutine that changes the session and writes to the players.
func (u useCase) Play(ctx context.Context, match *domain.Match) error {
	defer close(match.Done)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := newReferee(match, u.stats, rng, u.logger)
	r.start(ctx)

	turnClock, reconnectClock := newClock(), newClock()
	defer turnClock.stop()
	defer reconnectClock.stop()

	turnSeq := -1
	for !r.over() {
		if r.turnSeq != turnSeq {
			turnSeq = r.turnSeq
			if r.turnClockRunning() {
				turnClock.arm(u.cfg.TurnTimeout)
			} else {
				turnClock.stop()
			}
		}
		switch {
		case r.missingSince.IsZero():
			reconnectClock.stop()
		case !reconnectClock.armed:
			reconnectClock.arm(time.Until(r.missingSince.Add(u.cfg.ReconnectTimeout)))
		}

		select {
		case <-ctx.Done():
			r.publish()
			return errors.WithMessage(ctx.Err(), "play game")
		case p := <-match.Joins:
			r.join(p)
		case a := <-match.Actions:
			r.handle(ctx, a)
		case <-turnClock.C():
			turnClock.fired()
			r.forfeitTurn(ctx)
		case <-reconnectClock.C():
			reconnectClock.fired()
			r.expireReconnect(ctx)
		}
	}
	session := match.Session()
	u.logger.Info("game over",
		zap.String("game uuid", session.Uuid),
		zap.String("winner", session.State.Winner.String()),
		zap.String("walkover winner", session.WalkoverWinner.String()))
	return nil
}
