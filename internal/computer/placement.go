package computer

import (
	"math/rand"

	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
)

const maxPlacementAttempts = 10000

// PlaceFleet fills the rest of side's quota with randomly placed ships,
// re-rolling a ship whenever it leaves the board or overlaps.
func PlaceFleet(s engine.GameState, side engine.Side, rng *rand.Rand) (engine.GameState, error) {
	attempts := 0
	for engine.ShipsPlaced(s, side) < s.Rules.Quota {
		if attempts >= maxPlacementAttempts {
			return s, ErrPlacementExhausted
		}
		attempts++
		start := engine.ToCoord(rng.Intn(engine.CellCount))
		o := engine.Horizontal
		if rng.Intn(2) == 0 {
			o = engine.Vertical
		}
		next, err := engine.PlaceShip(s, side, start, o)
		switch {
		case errors.Is(err, engine.ErrOutOfBounds), errors.Is(err, engine.ErrOverlap):
			continue
		case err != nil:
			return s, errors.WithMessage(err, "place ship")
		}
		s = next
	}
	return s, nil
}
