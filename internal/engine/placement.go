package engine

import (
	"github.com/pkg/errors"
)

// PlaceShip adds a ship of the configured length starting at start to the
// side's fleet. The returned state is a new value; s is left untouched.
func PlaceShip(s GameState, side Side, start Coord, o Orientation) (GameState, error) {
	if !side.Valid() {
		return s, ErrInvalidSide
	}
	if s.Phase != PhasePlacement {
		return s, errors.WithMessagef(ErrWrongPhase, "cannot place ships in phase '%s'", s.Phase)
	}
	if s.Turn != side {
		return s, errors.WithMessagef(ErrWrongTurn, "%s cannot place ships now", side)
	}
	fleet := s.Fleets[side]
	if len(fleet.Ships) >= s.Rules.Quota {
		return s, ErrQuotaExceeded
	}
	cells, err := ShipCells(start, o, s.Rules.ShipLength)
	if err != nil {
		return s, errors.WithMessagef(err, "ship at %s %s", start, o)
	}
	for _, cell := range cells {
		if fleet.shipAt(cell) >= 0 {
			return s, errors.WithMessagef(ErrOverlap, "cell %s is taken", ToCoord(cell))
		}
	}
	next := s.Clone()
	next.Fleets[side].Ships = append(next.Fleets[side].Ships, Ship{Cells: cells})
	if len(next.Fleets[side].Ships) < s.Rules.Quota {
		return next, nil
	}
	opponent := side.Opponent()
	if len(next.Fleets[opponent].Ships) < s.Rules.Quota {
		next.Turn = opponent
		return next, nil
	}
	next.Phase = PhaseBattle
	next.Turn = SideA
	for i := range next.Fleets {
		next.Fleets[i].Orientation = Horizontal
	}
	return next, nil
}

// ToggleOrientation flips the orientation used for the side's next placement.
func ToggleOrientation(s GameState, side Side) (GameState, error) {
	if !side.Valid() {
		return s, ErrInvalidSide
	}
	if s.Phase == PhaseGameOver {
		return s, errors.WithMessage(ErrWrongPhase, "game is over")
	}
	next := s.Clone()
	next.Fleets[side].Orientation = next.Fleets[side].Orientation.Toggle()
	return next, nil
}
