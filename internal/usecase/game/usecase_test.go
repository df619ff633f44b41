package game

import (
	"context"
	"testing"
	"time"

	"github.com/kiryu-dev/battleship/internal/config"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func startPlay(t *testing.T, cfg config.GameConfig, session domain.Session) (*domain.Match, *fakeStats,
	context.CancelFunc, chan error) {
	t.Helper()
	stats := newFakeStats()
	u := New(stats, cfg, zaptest.NewLogger(t))
	match := domain.NewMatch(session)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	errChan := make(chan error, 1)
	go func() {
		errChan <- u.Play(ctx, match)
	}()
	return match, stats, cancel, errChan
}

func sendAction(t *testing.T, match *domain.Match, p domain.Player, msg domain.Message) {
	t.Helper()
	select {
	case match.Actions <- domain.Action{Player: p, Message: msg}:
	case <-time.After(waitFor):
		t.Fatal("referee did not accept the action")
	}
}

func onlineSession() domain.Session {
	session := domain.NewSession(testGameUuid, domain.ModeOnline, engine.DefaultRules())
	session.Player1 = "alice"
	session.Player2 = "bob"
	return session
}

func TestUseCase_Play(t *testing.T) {
	t.Run("Turn clock forfeits", func(t *testing.T) {
		cfg := config.GameConfig{TurnTimeout: 30 * time.Millisecond, ReconnectTimeout: time.Minute}
		match, _, cancel, errChan := startPlay(t, cfg, onlineSession())

		// Given: both players joined and placed their fleets
		cliA, cliB := newFakeClient("alice"), newFakeClient("bob")
		pA := domain.NewPlayer(testGameUuid, cliA, engine.SideA)
		pB := domain.NewPlayer(testGameUuid, cliB, engine.SideB)
		match.Joins <- pA
		match.Joins <- pB
		for _, c := range []engine.Coord{{X: 0, Y: 0}, {X: 0, Y: 2}} {
			sendAction(t, match, pA, domain.Message{Type: domain.PlaceShip, Payload: domain.CellPayload{X: c.X, Y: c.Y}})
		}
		for _, c := range []engine.Coord{{X: 5, Y: 5}, {X: 0, Y: 9}} {
			sendAction(t, match, pB, domain.Message{Type: domain.PlaceShip, Payload: domain.CellPayload{X: c.X, Y: c.Y}})
		}

		// When: nobody fires
		// Then: the turn keeps passing on its own
		require.Eventually(t, func() bool {
			return len(payloadsOf[domain.TurnForfeitedPayload](cliB)) >= 2
		}, waitFor, tick)
		forfeited := payloadsOf[domain.TurnForfeitedPayload](cliB)
		assert.Equal(t, engine.SideA, forfeited[0].Side)
		assert.Equal(t, engine.SideB, forfeited[1].Side)

		// When: the server shuts down
		cancel()

		// Then: Play returns and the match is done
		select {
		case err := <-errChan:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(waitFor):
			t.Fatal("play did not return")
		}
		_, open := <-match.Done
		assert.False(t, open)
		assert.Equal(t, domain.Playing, match.Session().Status)
	})

	t.Run("Walkover when opponent never joins", func(t *testing.T) {
		cfg := config.GameConfig{TurnTimeout: time.Minute, ReconnectTimeout: 100 * time.Millisecond}
		match, stats, _, errChan := startPlay(t, cfg, onlineSession())

		// Given: only A joins
		cliA := newFakeClient("alice")
		match.Joins <- domain.NewPlayer(testGameUuid, cliA, engine.SideA)

		// When: the reconnect window expires
		select {
		case err := <-errChan:
			require.NoError(t, err)
		case <-time.After(waitFor):
			t.Fatal("play did not return")
		}

		// Then: A wins by walkover
		session := match.Session()
		assert.Equal(t, domain.Abandoned, session.Status)
		assert.Equal(t, engine.SideA, session.WalkoverWinner)
		require.Len(t, payloadsOf[domain.WalkoverPayload](cliA), 1)
		assert.Equal(t, domain.PlayerStats{Wins: 1}, stats.result("alice"))
	})

	t.Run("Abandoned when nobody joins", func(t *testing.T) {
		cfg := config.GameConfig{TurnTimeout: time.Minute, ReconnectTimeout: 10 * time.Millisecond}
		match, stats, _, errChan := startPlay(t, cfg, onlineSession())

		// When: nobody ever joins
		select {
		case err := <-errChan:
			require.NoError(t, err)
		case <-time.After(waitFor):
			t.Fatal("play did not return")
		}

		// Then: the game is dropped
		assert.Equal(t, domain.Abandoned, match.Session().Status)
		assert.Empty(t, stats.wins)
	})
}
