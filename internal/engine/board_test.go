package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexConversion(t *testing.T) {
	t.Run("Round trip over every cell", func(t *testing.T) {
		for i := 0; i < CellCount; i++ {
			c := ToCoord(i)
			require.True(t, c.InBounds())
			require.Equal(t, i, ToIndex(c.X, c.Y))
			require.Equal(t, i, c.Index())
		}
	})

	t.Run("Row major layout", func(t *testing.T) {
		assert.Equal(t, 0, ToIndex(0, 0))
		assert.Equal(t, 9, ToIndex(9, 0))
		assert.Equal(t, 10, ToIndex(0, 1))
		assert.Equal(t, 99, ToIndex(9, 9))
		assert.Equal(t, Coord{X: 3, Y: 7}, ToCoord(73))
	})

	t.Run("Unrepresentable index panics", func(t *testing.T) {
		assert.Panics(t, func() { ToCoord(-1) })
		assert.Panics(t, func() { ToCoord(CellCount) })
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(9, 9))
	assert.False(t, InBounds(10, 0))
	assert.False(t, InBounds(0, 10))
	assert.False(t, InBounds(-1, 5))
	assert.False(t, InBounds(5, -1))
}

func TestNeighbors(t *testing.T) {
	t.Run("Corner cell has two neighbours", func(t *testing.T) {
		assert.ElementsMatch(t, []Coord{{X: 1, Y: 0}, {X: 0, Y: 1}}, Neighbors(Coord{}))
	})

	t.Run("Inner cell has four neighbours", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Coord{{X: 5, Y: 4}, {X: 5, Y: 6}, {X: 4, Y: 5}, {X: 6, Y: 5}},
			Neighbors(Coord{X: 5, Y: 5}))
	})

	t.Run("Edge cell has three neighbours", func(t *testing.T) {
		assert.Len(t, Neighbors(Coord{X: 9, Y: 4}), 3)
	})
}

func TestShipCells(t *testing.T) {
	t.Run("Horizontal", func(t *testing.T) {
		cells, err := ShipCells(Coord{X: 2, Y: 3}, Horizontal, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{32, 33, 34}, cells)
	})

	t.Run("Vertical", func(t *testing.T) {
		cells, err := ShipCells(Coord{X: 2, Y: 3}, Vertical, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{32, 42, 52}, cells)
	})

	t.Run("Leaving the board", func(t *testing.T) {
		_, err := ShipCells(Coord{X: 8, Y: 0}, Horizontal, 3)
		require.ErrorIs(t, err, ErrOutOfBounds)

		_, err = ShipCells(Coord{X: 0, Y: 8}, Vertical, 3)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestRules_Validate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
	require.NoError(t, Rules{Quota: 3, ShipLength: 3}.Validate())
	require.NoError(t, Rules{Quota: 10, ShipLength: 10}.Validate())

	require.ErrorIs(t, Rules{Quota: 0, ShipLength: 3}.Validate(), ErrInvalidRules)
	require.ErrorIs(t, Rules{Quota: 2, ShipLength: 0}.Validate(), ErrInvalidRules)
	require.ErrorIs(t, Rules{Quota: 1, ShipLength: 11}.Validate(), ErrInvalidRules)
	require.ErrorIs(t, Rules{Quota: 11, ShipLength: 10}.Validate(), ErrInvalidRules)
}
