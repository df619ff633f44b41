package engine

import (
	"fmt"
)

const (
	BoardSize = 10
	CellCount = BoardSize * BoardSize
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) Index() int {
	return ToIndex(c.X, c.Y)
}

func (c Coord) InBounds() bool {
	return InBounds(c.X, c.Y)
}

func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func ToIndex(x, y int) int {
	return y*BoardSize + x
}

// ToCoord panics on an index that does not address a cell.
func ToCoord(index int) Coord {
	if !IndexInBounds(index) {
		panic(fmt.Sprintf("engine: cell index %d out of range", index))
	}
	return Coord{X: index % BoardSize, Y: index / BoardSize}
}

func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func IndexInBounds(index int) bool {
	return index >= 0 && index < CellCount
}

var neighborOffsets = [4][2]int{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

// Neighbors returns the up, down, left and right cells that are on the board.
func Neighbors(c Coord) []Coord {
	result := make([]Coord, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		n := c.Add(offset[0], offset[1])
		if n.InBounds() {
			result = append(result, n)
		}
	}
	return result
}
