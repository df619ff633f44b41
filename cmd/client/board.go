package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
)

const columns = "ABCDEFGHIJ"

var errInvalidCell = errors.New("enter a cell like B7")

// parseCell turns "B7" into zero-based board coordinates.
func parseCell(input string) (int, int, error) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if len(input) < 2 {
		return 0, 0, errInvalidCell
	}
	x := strings.IndexByte(columns, input[0])
	if x < 0 {
		return 0, 0, errors.WithMessagef(errInvalidCell, "unknown column '%c'", input[0])
	}
	row, err := strconv.Atoi(input[1:])
	if err != nil || row < 1 || row > engine.BoardSize {
		return 0, 0, errors.WithMessagef(errInvalidCell, "unknown row '%s'", input[1:])
	}
	return x, row - 1, nil
}

func formatCell(x, y int) string {
	if !engine.InBounds(x, y) {
		return fmt.Sprintf("(%d, %d)", x, y)
	}
	return fmt.Sprintf("%c%d", columns[x], y+1)
}

func cellRune(c engine.CellState) rune {
	switch c {
	case engine.CellShip:
		return '#'
	case engine.CellHit:
		return 'X'
	case engine.CellMiss:
		return 'o'
	case engine.CellSunk:
		return '*'
	default:
		return '.'
	}
}

func (c *client) printBoards() {
	fmt.Printf("\033[H\033[J")
	fmt.Printf("phase: %s, turn: %s, mode: %s\n", c.view.Phase, c.view.Turn, c.mode)
	fmt.Printf("ships placed: %d, afloat: %d, enemy afloat: %d\n\n",
		c.view.ShipsPlaced, c.view.ShipsRemaining, c.view.OpponentShipsRemaining)
	header := "   " + strings.Join(strings.Split(columns, ""), " ")
	fmt.Printf("%-24s%s\n", "your fleet", "enemy waters")
	fmt.Printf("%-24s%s\n", header, header)
	for y := 0; y < engine.BoardSize; y++ {
		fmt.Printf("%-24s%s\n", boardRow(c.view.Own[:], y), boardRow(c.view.Target[:], y))
	}
	fmt.Println()
	for _, event := range c.events {
		fmt.Println(event)
	}
}

func boardRow(cells []engine.CellState, y int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%2d ", y+1)
	for x := 0; x < engine.BoardSize; x++ {
		b.WriteRune(cellRune(cells[engine.ToIndex(x, y)]))
		if x < engine.BoardSize-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
