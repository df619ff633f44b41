package engine

func ShipsRemaining(s GameState, side Side) int {
	remaining := 0
	for _, ship := range s.Fleets[mustIndex(side)].Ships {
		if !ship.Sunk() {
			remaining++
		}
	}
	return remaining
}

func ShipsPlaced(s GameState, side Side) int {
	return len(s.Fleets[mustIndex(side)].Ships)
}

func IsGameOver(s GameState) bool {
	return s.Phase == PhaseGameOver
}

func Winner(s GameState) (Side, bool) {
	if s.Phase != PhaseGameOver || !s.Winner.Valid() {
		return NoSide, false
	}
	return s.Winner, true
}

// Attacked reports whether side has already shot at the cell.
func Attacked(s GameState, side Side, c Coord) bool {
	if !c.InBounds() {
		return false
	}
	return s.Fleets[mustIndex(side)].attacked(c.Index())
}

// CellStateAt describes a cell of side's own board, ships included.
func CellStateAt(s GameState, side Side, x, y int) CellState {
	if !InBounds(x, y) {
		return CellUnknown
	}
	index := ToIndex(x, y)
	own := s.Fleets[mustIndex(side)]
	enemy := s.Fleets[side.Opponent()]
	if i := own.shipAt(index); i >= 0 {
		switch {
		case !containsInt(enemy.Hits, index):
			return CellShip
		case own.Ships[i].Sunk():
			return CellSunk
		default:
			return CellHit
		}
	}
	if containsInt(enemy.Misses, index) {
		return CellMiss
	}
	return CellUnknown
}

// TargetCellState describes a cell of the opponent's board as side sees it:
// ships stay hidden until hit.
func TargetCellState(s GameState, side Side, x, y int) CellState {
	if !InBounds(x, y) {
		return CellUnknown
	}
	index := ToIndex(x, y)
	own := s.Fleets[mustIndex(side)]
	if containsInt(own.Misses, index) {
		return CellMiss
	}
	if !containsInt(own.Hits, index) {
		return CellUnknown
	}
	enemy := s.Fleets[side.Opponent()]
	if i := enemy.shipAt(index); i >= 0 && enemy.Ships[i].Sunk() {
		return CellSunk
	}
	return CellHit
}
