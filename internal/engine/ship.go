package engine

type Orientation byte

const (
	Horizontal = Orientation(iota)
	Vertical
)

func (o Orientation) Toggle() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) step() (dx, dy int) {
	if o == Vertical {
		return 0, 1
	}
	return 1, 0
}

// Ship is a straight run of cells identified by their flat indexes.
type Ship struct {
	Cells []int
	Hits  int
}

func (s Ship) Sunk() bool {
	return len(s.Cells) > 0 && s.Hits >= len(s.Cells)
}

func (s Ship) Occupies(index int) bool {
	for _, cell := range s.Cells {
		if cell == index {
			return true
		}
	}
	return false
}

func (s Ship) clone() Ship {
	cells := make([]int, len(s.Cells))
	copy(cells, s.Cells)
	return Ship{Cells: cells, Hits: s.Hits}
}

// ShipCells computes the cells a ship of the given length would occupy.
// Off-board cells are reported with ErrOutOfBounds and no cells.
func ShipCells(start Coord, o Orientation, length int) ([]int, error) {
	dx, dy := o.step()
	cells := make([]int, 0, length)
	for k := 0; k < length; k++ {
		c := start.Add(k*dx, k*dy)
		if !c.InBounds() {
			return nil, ErrOutOfBounds
		}
		cells = append(cells, c.Index())
	}
	return cells, nil
}
