package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placement struct {
	start Coord
	o     Orientation
}

var (
	fleetA = []placement{
		{Coord{X: 0, Y: 0}, Horizontal},
		{Coord{X: 0, Y: 2}, Horizontal},
	}
	fleetB = []placement{
		{Coord{X: 5, Y: 5}, Horizontal},
		{Coord{X: 9, Y: 0}, Vertical},
	}
)

func mustPlace(t *testing.T, s GameState, side Side, fleet []placement) GameState {
	t.Helper()
	for _, p := range fleet {
		var err error
		s, err = PlaceShip(s, side, p.start, p.o)
		require.NoError(t, err)
	}
	return s
}

func battleState(t *testing.T) GameState {
	t.Helper()
	s := NewGameState(DefaultRules())
	s = mustPlace(t, s, SideA, fleetA)
	s = mustPlace(t, s, SideB, fleetB)
	require.Equal(t, PhaseBattle, s.Phase)
	return s
}

func mustAttack(t *testing.T, s GameState, side Side, x, y int) (GameState, AttackOutcome) {
	t.Helper()
	next, outcome, err := Attack(s, side, Coord{X: x, Y: y})
	require.NoError(t, err)
	return next, outcome
}

func shipCellCount(s GameState, side Side) int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if CellStateAt(s, side, x, y) == CellShip {
				count++
			}
		}
	}
	return count
}

func TestNewGameState(t *testing.T) {
	// When: a new match is created
	s := NewGameState(DefaultRules())

	// Then: it starts in placement with side A to act and nobody has won
	require.Equal(t, PhasePlacement, s.Phase)
	require.Equal(t, SideA, s.Turn)
	require.Equal(t, NoSide, s.Winner)
	require.Equal(t, Horizontal, s.Orientation(SideA))
	require.Zero(t, ShipsPlaced(s, SideA))
	require.Zero(t, ShipsPlaced(s, SideB))
}

func TestPlaceShip(t *testing.T) {
	t.Run("Valid placement occupies exactly the computed cells", func(t *testing.T) {
		// Given: a fresh game
		s := NewGameState(DefaultRules())

		// When: side A places a vertical ship at (4,4)
		next, err := PlaceShip(s, SideA, Coord{X: 4, Y: 4}, Vertical)

		// Then: the three cells show a ship and nothing else does
		require.NoError(t, err)
		assert.Equal(t, CellShip, CellStateAt(next, SideA, 4, 4))
		assert.Equal(t, CellShip, CellStateAt(next, SideA, 4, 5))
		assert.Equal(t, CellShip, CellStateAt(next, SideA, 4, 6))
		assert.Equal(t, 3, shipCellCount(next, SideA))
		assert.Equal(t, 1, ShipsPlaced(next, SideA))

		// Then: the input state is untouched
		assert.Zero(t, ShipsPlaced(s, SideA))
	})

	t.Run("Every in-bounds start succeeds on an empty board", func(t *testing.T) {
		s := NewGameState(DefaultRules())
		for i := 0; i < CellCount; i++ {
			start := ToCoord(i)
			for _, o := range []Orientation{Horizontal, Vertical} {
				cells, cellsErr := ShipCells(start, o, 3)
				next, err := PlaceShip(s, SideA, start, o)
				if cellsErr != nil {
					require.ErrorIs(t, err, ErrOutOfBounds)
					continue
				}
				require.NoError(t, err)
				require.Equal(t, cells, next.Fleets[SideA].Ships[0].Cells)
				require.Equal(t, 3, shipCellCount(next, SideA))
			}
		}
	})

	t.Run("Out of bounds placement is rejected", func(t *testing.T) {
		// Given: a fresh game
		s := NewGameState(DefaultRules())

		// When: a horizontal ship starts at (8,0)
		next, err := PlaceShip(s, SideA, Coord{X: 8, Y: 0}, Horizontal)

		// Then: ErrOutOfBounds is returned and the board is unchanged
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.Equal(t, s, next)
		require.Zero(t, shipCellCount(next, SideA))
	})

	t.Run("Overlap with own ship is rejected", func(t *testing.T) {
		// Given: side A has a ship on (0,0)-(2,0)
		s := mustPlace(t, NewGameState(DefaultRules()), SideA, fleetA[:1])

		// When: a vertical ship crosses it at (1,0)
		next, err := PlaceShip(s, SideA, Coord{X: 1, Y: 0}, Vertical)

		// Then: ErrOverlap is returned and the board is unchanged
		require.ErrorIs(t, err, ErrOverlap)
		require.Equal(t, s, next)
		require.Equal(t, 3, shipCellCount(next, SideA))
	})

	t.Run("Opponent ships never collide", func(t *testing.T) {
		// Given: side A placed its fleet
		s := mustPlace(t, NewGameState(DefaultRules()), SideA, fleetA)

		// When: side B places its fleet on exactly the same cells
		s = mustPlace(t, s, SideB, fleetA)

		// Then: both fleets are placed and the battle starts
		require.Equal(t, PhaseBattle, s.Phase)
	})

	t.Run("Completing side A hands placement to side B", func(t *testing.T) {
		s := mustPlace(t, NewGameState(DefaultRules()), SideA, fleetA[:1])
		require.Equal(t, SideA, s.Turn)

		s = mustPlace(t, s, SideA, fleetA[1:])

		require.Equal(t, PhasePlacement, s.Phase)
		require.Equal(t, SideB, s.Turn)
	})

	t.Run("Completing side B starts the battle", func(t *testing.T) {
		// Given: both players placed, side B toggled to vertical on the way
		s := mustPlace(t, NewGameState(DefaultRules()), SideA, fleetA)
		s, err := ToggleOrientation(s, SideB)
		require.NoError(t, err)
		s = mustPlace(t, s, SideB, fleetB)

		// Then: battle begins with side A and orientations are reset
		require.Equal(t, PhaseBattle, s.Phase)
		require.Equal(t, SideA, s.Turn)
		require.Equal(t, Horizontal, s.Orientation(SideA))
		require.Equal(t, Horizontal, s.Orientation(SideB))
	})

	t.Run("Wrong side cannot place", func(t *testing.T) {
		s := NewGameState(DefaultRules())

		next, err := PlaceShip(s, SideB, Coord{}, Horizontal)

		require.ErrorIs(t, err, ErrWrongTurn)
		require.Equal(t, s, next)
	})

	t.Run("Quota exceeded", func(t *testing.T) {
		// Given: side B has placed its quota while side A still places
		s := NewGameState(DefaultRules())
		s.Turn = SideB
		s = mustPlace(t, s, SideB, fleetB)
		require.Equal(t, SideA, s.Turn)
		s.Turn = SideB

		// When: side B tries a third ship
		next, err := PlaceShip(s, SideB, Coord{X: 0, Y: 7}, Horizontal)

		// Then: ErrQuotaExceeded is returned
		require.ErrorIs(t, err, ErrQuotaExceeded)
		require.Equal(t, s, next)
	})

	t.Run("No placement during battle", func(t *testing.T) {
		s := battleState(t)

		_, err := PlaceShip(s, SideA, Coord{X: 0, Y: 5}, Horizontal)

		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("Configured quota and length are honoured", func(t *testing.T) {
		s := NewGameState(Rules{Quota: 3, ShipLength: 4})
		s = mustPlace(t, s, SideA, []placement{
			{Coord{X: 0, Y: 0}, Horizontal},
			{Coord{X: 0, Y: 1}, Horizontal},
		})
		require.Equal(t, SideA, s.Turn)

		s = mustPlace(t, s, SideA, []placement{{Coord{X: 0, Y: 2}, Horizontal}})

		require.Equal(t, SideB, s.Turn)
		require.Equal(t, 12, shipCellCount(s, SideA))
	})
}

func TestToggleOrientation(t *testing.T) {
	s := NewGameState(DefaultRules())

	s, err := ToggleOrientation(s, SideA)
	require.NoError(t, err)
	require.Equal(t, Vertical, s.Orientation(SideA))
	require.Equal(t, Horizontal, s.Orientation(SideB))

	s, err = ToggleOrientation(s, SideA)
	require.NoError(t, err)
	require.Equal(t, Horizontal, s.Orientation(SideA))

	_, err = ToggleOrientation(s, NoSide)
	require.ErrorIs(t, err, ErrInvalidSide)

	s.Phase = PhaseGameOver
	_, err = ToggleOrientation(s, SideA)
	require.ErrorIs(t, err, ErrWrongPhase)
}
