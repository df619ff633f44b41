package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kiryu-dev/battleship/internal/computer"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/kiryu-dev/battleship/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// computerSide is the side the computer plays in computer mode.
const computerSide = engine.SideB

type referee struct {
	match   *domain.Match
	session domain.Session
	players map[engine.Side]domain.Player
	// human sides that have no connection right now
	missing      map[engine.Side]struct{}
	missingSince time.Time
	// bumped whenever the turn or the phase changes
	turnSeq int
	rng     *rand.Rand
	stats   domain.StatsRepository
	logger  *zap.Logger
}

func newReferee(match *domain.Match, stats domain.StatsRepository, rng *rand.Rand,
	logger *zap.Logger) *referee {
	return &referee{
		match:   match,
		session: match.Session(),
		players: make(map[engine.Side]domain.Player),
		missing: make(map[engine.Side]struct{}),
		rng:     rng,
		stats:   stats,
		logger:  logger,
	}
}

func (r *referee) start(ctx context.Context) {
	if r.session.Status == domain.Waiting {
		r.session.Status = domain.Playing
	}
	for _, side := range r.session.HumanSides() {
		r.missing[side] = struct{}{}
	}
	r.missingSince = time.Now()
	r.advanceComputer()
	r.finishIfOver(ctx)
	r.publish()
}

func (r *referee) over() bool {
	return r.session.Status.Over()
}

func (r *referee) turnClockRunning() bool {
	state := r.session.State
	return state.Phase == engine.PhaseBattle && !r.computerPlays(state.Turn)
}

func (r *referee) computerPlays(side engine.Side) bool {
	return r.session.Mode == domain.ModeComputer && side == computerSide
}

func (r *referee) seated(side engine.Side) bool {
	for _, s := range r.session.HumanSides() {
		if s == side {
			return true
		}
	}
	return false
}

// sideOf returns the side a player acts for. In local mode the only player
// acts for whoever has the turn.
func (r *referee) sideOf(p domain.Player) engine.Side {
	if r.session.Mode == domain.ModeLocal {
		return r.session.State.Turn
	}
	return p.Side()
}

func (r *referee) join(p domain.Player) {
	side := p.Side()
	if !r.seated(side) {
		r.logger.Warn("player has no seat in this game",
			zap.String("game uuid", r.session.Uuid),
			zap.String("player uuid", p.Uuid()),
			zap.String("side", side.String()))
		return
	}
	if _, ok := r.players[side]; ok {
		r.logger.Info("replacing player connection",
			zap.String("game uuid", r.session.Uuid),
			zap.String("player uuid", p.Uuid()))
	}
	r.players[side] = p
	delete(r.missing, side)
	if len(r.missing) == 0 {
		r.missingSince = time.Time{}
	}
	r.send(p, domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			GameUuid: r.session.Uuid,
			Side:     r.sideOf(p),
			Mode:     r.session.Mode,
			Rules:    r.session.State.Rules,
			View:     domain.NewBoardView(r.session.State, r.sideOf(p)),
		},
	})
	r.logger.Info("player joined",
		zap.String("game uuid", r.session.Uuid),
		zap.String("player uuid", p.Uuid()),
		zap.String("side", side.String()))
}

func (r *referee) handle(ctx context.Context, a domain.Action) {
	current, ok := r.players[a.Player.Side()]
	if !ok || !current.Same(a.Player) {
		return
	}
	if errors.Is(a.Err, domain.ErrConnectionClosed) {
		r.disconnect(a.Player, a.Err)
		return
	}
	side := r.sideOf(a.Player)
	var err error
	switch {
	case a.Err != nil:
		err = a.Err
	case a.Message.Type == domain.PlaceShip:
		err = r.placeShip(side, a.Message.Payload)
	case a.Message.Type == domain.ToggleOrientation:
		err = r.toggleOrientation(side)
	case a.Message.Type == domain.Attack:
		err = r.attack(a.Player, side, a.Message.Payload)
	default:
		err = errors.WithMessagef(errUnexpectedMessageType, "%d", a.Message.Type)
	}
	if err != nil {
		r.logger.Info("action rejected",
			zap.String("game uuid", r.session.Uuid),
			zap.String("player uuid", a.Player.Uuid()),
			zap.Error(err))
		r.send(a.Player, domain.Message{
			Type:    domain.ActionRejected,
			Payload: domain.ActionRejectedPayload{Reason: err.Error()},
		})
		return
	}
	r.afterChange(ctx)
}

func (r *referee) placeShip(side engine.Side, payload any) error {
	if !side.Valid() {
		return errors.WithMessagef(engine.ErrInvalidSide, "'%d'", side)
	}
	cell, err := decodeCell(payload)
	if err != nil {
		return err
	}
	next, err := engine.PlaceShip(r.session.State, side, cell, r.session.State.Orientation(side))
	if err != nil {
		return errors.WithMessage(err, "place ship")
	}
	r.commit(next)
	return nil
}

func (r *referee) toggleOrientation(side engine.Side) error {
	next, err := engine.ToggleOrientation(r.session.State, side)
	if err != nil {
		return errors.WithMessage(err, "toggle orientation")
	}
	r.commit(next)
	return nil
}

func (r *referee) attack(p domain.Player, side engine.Side, payload any) error {
	target, err := decodeCell(payload)
	if err != nil {
		return err
	}
	next, outcome, err := engine.Attack(r.session.State, side, target)
	if err != nil {
		return errors.WithMessage(err, "attack")
	}
	result := attackResult(side, target, outcome)
	if outcome == engine.AlreadyAttacked {
		r.send(p, result)
		return nil
	}
	r.commit(next)
	r.broadcast(result)
	return nil
}

func (r *referee) forfeitTurn(ctx context.Context) {
	side := r.session.State.Turn
	next, err := engine.ForfeitTurn(r.session.State)
	if err != nil {
		r.logger.Warn("forfeit turn", zap.String("game uuid", r.session.Uuid), zap.Error(err))
		return
	}
	r.commit(next)
	r.logger.Info("turn forfeited", zap.String("game uuid", r.session.Uuid), zap.String("side", side.String()))
	r.broadcast(domain.Message{
		Type:    domain.TurnForfeited,
		Payload: domain.TurnForfeitedPayload{Side: side},
	})
	r.afterChange(ctx)
}

func (r *referee) disconnect(p domain.Player, err error) {
	side := p.Side()
	delete(r.players, side)
	r.missing[side] = struct{}{}
	if r.missingSince.IsZero() {
		r.missingSince = time.Now()
	}
	r.logger.Info("player disconnected",
		zap.String("game uuid", r.session.Uuid),
		zap.String("player uuid", p.Uuid()),
		zap.Error(err))
	r.publish()
}

// expireReconnect ends the game once the reconnect window is over. The
// remaining player wins by walkover; if nobody is left the game is dropped.
func (r *referee) expireReconnect(ctx context.Context) {
	if len(r.missing) == 0 || r.over() {
		return
	}
	r.session.Status = domain.Abandoned
	r.session.UpdatedAt = time.Now()
	winner := engine.NoSide
	for _, side := range r.session.HumanSides() {
		if _, gone := r.missing[side]; !gone {
			winner = side
		}
	}
	if winner == engine.NoSide {
		r.logger.Info("game abandoned", zap.String("game uuid", r.session.Uuid))
		r.publish()
		return
	}
	r.session.WalkoverWinner = winner
	r.send(r.players[winner], domain.Message{
		Type:    domain.Walkover,
		Payload: domain.WalkoverPayload{GameResult: WalkoverGameResult},
	})
	r.recordResult(ctx, winner)
	r.publish()
}

func (r *referee) afterChange(ctx context.Context) {
	r.advanceComputer()
	r.broadcastState()
	r.finishIfOver(ctx)
	r.publish()
}

// advanceComputer plays every computer turn that is due.
func (r *referee) advanceComputer() {
	for !r.over() && r.session.State.Phase != engine.PhaseGameOver && r.computerPlays(r.session.State.Turn) {
		var err error
		switch r.session.State.Phase {
		case engine.PhasePlacement:
			err = r.placeComputerFleet()
		case engine.PhaseBattle:
			err = r.computerAttack()
		}
		if err != nil {
			r.logger.Error("computer move", zap.String("game uuid", r.session.Uuid), zap.Error(err))
			r.session.Status = domain.Abandoned
			return
		}
	}
}

func (r *referee) placeComputerFleet() error {
	next, err := computer.PlaceFleet(r.session.State, computerSide, r.rng)
	if err != nil {
		return errors.WithMessage(err, "place fleet")
	}
	r.commit(next)
	return nil
}

func (r *referee) computerAttack() error {
	target, mem, err := computer.NextTarget(r.session.State, computerSide, r.session.Memory, r.rng)
	if err != nil {
		return errors.WithMessage(err, "next target")
	}
	next, outcome, err := engine.Attack(r.session.State, computerSide, target)
	if err != nil {
		return errors.WithMessage(err, "attack")
	}
	r.session.Memory = computer.Observe(next, computerSide, target, outcome, mem)
	r.commit(next)
	r.broadcast(attackResult(computerSide, target, outcome))
	return nil
}

func (r *referee) finishIfOver(ctx context.Context) {
	winner, ok := engine.Winner(r.session.State)
	if !ok || r.over() {
		return
	}
	r.session.Status = domain.Finished
	r.session.UpdatedAt = time.Now()
	for side, p := range r.players {
		r.send(p, domain.Message{
			Type: domain.GameOver,
			Payload: domain.GameOverPayload{
				Winner:     winner,
				GameResult: r.gameResult(side, winner),
			},
		})
	}
	r.recordResult(ctx, winner)
}

func (r *referee) gameResult(side engine.Side, winner engine.Side) string {
	if r.session.Mode == domain.ModeLocal {
		return fmt.Sprintf("%s wins", winner)
	}
	return toGameResult(winner, side)
}

// recordResult updates win/loss counters of the humans in the game.
func (r *referee) recordResult(ctx context.Context, winner engine.Side) {
	if r.stats == nil || r.session.Mode == domain.ModeLocal {
		return
	}
	for _, side := range r.session.HumanSides() {
		playerUuid := r.session.PlayerUuid(side)
		if playerUuid == "" {
			continue
		}
		var err error
		if side == winner {
			err = r.stats.AddWin(ctx, playerUuid)
		} else {
			err = r.stats.AddLoss(ctx, playerUuid)
		}
		if err != nil {
			r.logger.Warn("record game result", zap.String("player uuid", playerUuid), zap.Error(err))
		}
	}
}

func (r *referee) commit(next engine.GameState) {
	prev := r.session.State
	r.session.State = next
	r.session.UpdatedAt = time.Now()
	if prev.Turn != next.Turn || prev.Phase != next.Phase {
		r.turnSeq++
	}
}

func (r *referee) publish() {
	r.match.Publish(r.session)
}

func (r *referee) broadcastState() {
	for _, p := range r.players {
		r.send(p, domain.Message{
			Type:    domain.StateUpdate,
			Payload: domain.StateUpdatePayload{View: domain.NewBoardView(r.session.State, r.sideOf(p))},
		})
	}
}

func (r *referee) broadcast(msg domain.Message) {
	for _, p := range r.players {
		r.send(p, msg)
	}
}

func (r *referee) send(p domain.Player, msg domain.Message) {
	if err := p.SendMessage(msg); err != nil {
		r.logger.Warn("send message to player",
			zap.String("game uuid", r.session.Uuid),
			zap.String("player uuid", p.Uuid()),
			zap.Error(err))
	}
}

func decodeCell(payload any) (engine.Coord, error) {
	cell, err := utils.UnmarshalJson[domain.CellPayload](payload)
	if err != nil {
		return engine.Coord{}, errors.WithMessage(errInvalidPayload, err.Error())
	}
	return engine.Coord{X: cell.X, Y: cell.Y}, nil
}

func attackResult(attacker engine.Side, target engine.Coord, outcome engine.AttackOutcome) domain.Message {
	return domain.Message{
		Type: domain.AttackResult,
		Payload: domain.AttackResultPayload{
			Attacker: attacker,
			X:        target.X,
			Y:        target.Y,
			Outcome:  outcome.String(),
		},
	}
}
