package domain

import (
	"testing"
	"time"

	"github.com/kiryu-dev/battleship/internal/computer"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"":         ModeOnline,
		"online":   ModeOnline,
		"computer": ModeComputer,
		"local":    ModeLocal,
	} {
		mode, err := ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, mode, input)
	}

	_, err := ParseMode("tournament")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestSession(t *testing.T) {
	t.Run("Sides", func(t *testing.T) {
		// Given: an online session
		session := NewSession("game-1", ModeOnline, engine.DefaultRules())
		session.Player1 = "alice"
		session.Player2 = "bob"

		// Then: players map to their sides
		side, ok := session.SideOf("alice")
		assert.True(t, ok)
		assert.Equal(t, engine.SideA, side)
		side, ok = session.SideOf("bob")
		assert.True(t, ok)
		assert.Equal(t, engine.SideB, side)
		_, ok = session.SideOf("mallory")
		assert.False(t, ok)
		_, ok = session.SideOf("")
		assert.False(t, ok)
		assert.Equal(t, "bob", session.PlayerUuid(engine.SideB))
		assert.Equal(t, []engine.Side{engine.SideA, engine.SideB}, session.HumanSides())
	})

	t.Run("Computer session has one human", func(t *testing.T) {
		session := NewSession("game-1", ModeComputer, engine.DefaultRules())
		session.Player1 = "alice"

		_, ok := session.SideOf("")
		assert.False(t, ok)
		assert.Equal(t, []engine.Side{engine.SideA}, session.HumanSides())
	})

	t.Run("Record round trip", func(t *testing.T) {
		// Given: a session in battle with computer memory
		session := NewSession("game-1", ModeComputer, engine.Rules{Quota: 1, ShipLength: 2})
		session.Player1 = "alice"
		session.Status = Playing
		state, err := engine.PlaceShip(session.State, engine.SideA, engine.Coord{X: 0, Y: 0}, engine.Horizontal)
		require.NoError(t, err)
		state, err = engine.PlaceShip(state, engine.SideB, engine.Coord{X: 4, Y: 4}, engine.Horizontal)
		require.NoError(t, err)
		state, _, err = engine.Attack(state, engine.SideA, engine.Coord{X: 4, Y: 4})
		require.NoError(t, err)
		session.State = state
		session.Memory = computer.TargetingMemory{Pending: []int{1, 10}}
		session.UpdatedAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

		// When: the session goes through its record
		restored, err := RestoreSession(session.Record())

		// Then: nothing is lost
		require.NoError(t, err)
		assert.Equal(t, session, restored)
	})

	t.Run("Restore rejects corrupt state", func(t *testing.T) {
		// Given: a record whose state claims a hit on water
		record := NewSession("game-1", ModeOnline, engine.DefaultRules()).Record()
		record.State.Phase = engine.PhaseBattle.String()
		record.State.Player1Hits = []int{99}

		// When: it is restored
		_, err := RestoreSession(record)

		// Then: the snapshot error is returned
		require.ErrorIs(t, err, engine.ErrInvalidSnapshot)
	})

	t.Run("Restore rejects unknown status", func(t *testing.T) {
		// Given: a record with a status past Abandoned
		record := NewSession("game-1", ModeOnline, engine.DefaultRules()).Record()
		record.Status = Abandoned + 1

		// When: it is restored
		_, err := RestoreSession(record)

		// Then: the status error is returned
		require.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestMatch_Publish(t *testing.T) {
	// Given: a match
	session := NewSession("game-1", ModeLocal, engine.DefaultRules())
	match := NewMatch(session)

	// When: a new session value is published
	session.Status = Finished
	match.Publish(session)

	// Then: readers see it
	assert.Equal(t, Finished, match.Session().Status)
}

func TestNewBoardView(t *testing.T) {
	// Given: A's ship hit once by B
	state := engine.NewGameState(engine.Rules{Quota: 1, ShipLength: 2})
	state, err := engine.PlaceShip(state, engine.SideA, engine.Coord{X: 0, Y: 0}, engine.Horizontal)
	require.NoError(t, err)
	state, err = engine.PlaceShip(state, engine.SideB, engine.Coord{X: 5, Y: 5}, engine.Horizontal)
	require.NoError(t, err)
	state, _, err = engine.Attack(state, engine.SideA, engine.Coord{X: 9, Y: 9})
	require.NoError(t, err)
	state, _, err = engine.Attack(state, engine.SideB, engine.Coord{X: 0, Y: 0})
	require.NoError(t, err)

	// When: views are built for both sides
	viewA := NewBoardView(state, engine.SideA)
	viewB := NewBoardView(state, engine.SideB)

	// Then: each side sees its own ships and only its shots on the other board
	assert.Equal(t, engine.CellHit, viewA.Own[0])
	assert.Equal(t, engine.CellShip, viewA.Own[1])
	assert.Equal(t, engine.CellMiss, viewA.Target[99])
	assert.Equal(t, engine.CellUnknown, viewA.Target[55])
	assert.Equal(t, engine.CellHit, viewB.Target[0])
	assert.Equal(t, engine.CellUnknown, viewB.Target[1])
	assert.Equal(t, engine.CellShip, viewB.Own[55])
	assert.True(t, viewA.IsYourTurn())
	assert.False(t, viewB.IsYourTurn())
	assert.Equal(t, 1, viewB.ShipsRemaining)
	assert.Equal(t, 1, viewA.OpponentShipsRemaining)
}
