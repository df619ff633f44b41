package engine

import (
	"github.com/pkg/errors"
)

type AttackOutcome byte

const (
	NoOutcome = AttackOutcome(iota)
	Miss
	Hit
	HitAndEliminated
	HitAndGameOver
	AlreadyAttacked
)

func (o AttackOutcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case HitAndEliminated:
		return "hit_and_eliminated"
	case HitAndGameOver:
		return "hit_and_game_over"
	case AlreadyAttacked:
		return "already_attacked"
	default:
		return "none"
	}
}

func (o AttackOutcome) IsHit() bool {
	return o == Hit || o == HitAndEliminated || o == HitAndGameOver
}

// Attack resolves a shot of attacker at the defender's board. Shooting an
// already resolved cell is a no-op: the state comes back unchanged with the
// AlreadyAttacked outcome and the turn stays with the attacker.
func Attack(s GameState, attacker Side, target Coord) (GameState, AttackOutcome, error) {
	if !attacker.Valid() {
		return s, NoOutcome, ErrInvalidSide
	}
	if s.Phase != PhaseBattle {
		return s, NoOutcome, errors.WithMessagef(ErrWrongPhase, "cannot attack in phase '%s'", s.Phase)
	}
	if s.Turn != attacker {
		return s, NoOutcome, errors.WithMessagef(ErrWrongTurn, "%s cannot attack now", attacker)
	}
	if !target.InBounds() {
		return s, NoOutcome, errors.WithMessagef(ErrOutOfBounds, "target %s", target)
	}
	index := target.Index()
	if s.Fleets[attacker].attacked(index) {
		return s, AlreadyAttacked, nil
	}
	defender := attacker.Opponent()
	next := s.Clone()
	shipIdx := next.Fleets[defender].shipAt(index)
	if shipIdx < 0 {
		next.Fleets[attacker].Misses = append(next.Fleets[attacker].Misses, index)
		next.Turn = defender
		return next, Miss, nil
	}
	next.Fleets[attacker].Hits = append(next.Fleets[attacker].Hits, index)
	ship := &next.Fleets[defender].Ships[shipIdx]
	ship.Hits++
	if len(next.Fleets[attacker].Hits) >= s.Rules.FleetCells() {
		next.Phase = PhaseGameOver
		next.Winner = attacker
		return next, HitAndGameOver, nil
	}
	next.Turn = defender
	if ship.Sunk() {
		return next, HitAndEliminated, nil
	}
	return next, Hit, nil
}

// ForfeitTurn passes the turn to the opponent without recording an attack.
// Callers use it when a turn clock runs out.
func ForfeitTurn(s GameState) (GameState, error) {
	if s.Phase != PhaseBattle {
		return s, errors.WithMessagef(ErrWrongPhase, "cannot forfeit a turn in phase '%s'", s.Phase)
	}
	next := s.Clone()
	next.Turn = s.Turn.Opponent()
	return next, nil
}
