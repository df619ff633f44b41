package game

import (
	"github.com/kiryu-dev/battleship/internal/engine"
)

const (
	WinGameResult      = "Victory"
	LoseGameResult     = "Defeat"
	WalkoverGameResult = "Victory by walkover (opponent disconnected)"
)

func toGameResult(winner engine.Side, side engine.Side) string {
	if winner == side {
		return WinGameResult
	}
	return LoseGameResult
}
