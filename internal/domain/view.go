package domain

import (
	"github.com/kiryu-dev/battleship/internal/engine"
)

// BoardView is what a side is allowed to see: its own board with ships and
// the opponent's board with nothing but the results of its own shots.
type BoardView struct {
	Phase                  string
	Turn                   engine.Side
	YourSide               engine.Side
	Winner                 engine.Side
	Orientation            string
	ShipsPlaced            int
	ShipsRemaining         int
	OpponentShipsRemaining int
	Own                    [engine.CellCount]engine.CellState
	Target                 [engine.CellCount]engine.CellState
}

func NewBoardView(s engine.GameState, side engine.Side) BoardView {
	view := BoardView{
		Phase:                  s.Phase.String(),
		Turn:                   s.Turn,
		YourSide:               side,
		Winner:                 s.Winner,
		Orientation:            s.Orientation(side).String(),
		ShipsPlaced:            engine.ShipsPlaced(s, side),
		ShipsRemaining:         engine.ShipsRemaining(s, side),
		OpponentShipsRemaining: engine.ShipsRemaining(s, side.Opponent()),
	}
	for i := 0; i < engine.CellCount; i++ {
		c := engine.ToCoord(i)
		view.Own[i] = engine.CellStateAt(s, side, c.X, c.Y)
		view.Target[i] = engine.TargetCellState(s, side, c.X, c.Y)
	}
	return view
}

func (v BoardView) IsYourTurn() bool {
	return v.Phase != engine.PhaseGameOver.String() && v.Turn == v.YourSide
}
