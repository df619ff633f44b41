package engine

type CellState byte

const (
	CellUnknown = CellState(iota)
	CellShip
	CellHit
	CellMiss
	CellSunk
)

func (c CellState) String() string {
	switch c {
	case CellUnknown:
		return "unknown"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	case CellSunk:
		return "sunk"
	default:
		return "invalid"
	}
}

// Attacked reports whether the cell has been resolved by an attack.
func (c CellState) Attacked() bool {
	return c == CellHit || c == CellMiss || c == CellSunk
}
