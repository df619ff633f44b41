package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// Snapshot is the flat, storage friendly form of a GameState. Ships are
// stored as one list of cell indexes per side, ShipLength cells per ship.
type Snapshot struct {
	Quota           int    `json:"quota"`
	ShipLength      int    `json:"ship_length"`
	Phase           string `json:"phase"`
	Turn            string `json:"turn"`
	Winner          string `json:"winner,omitempty"`
	Player1Ships    []int  `json:"player1_ships"`
	Player2Ships    []int  `json:"player2_ships"`
	Player1Hits     []int  `json:"player1_hits"`
	Player2Hits     []int  `json:"player2_hits"`
	Player1Misses   []int  `json:"player1_misses"`
	Player2Misses   []int  `json:"player2_misses"`
	Player1Vertical bool   `json:"player1_vertical"`
	Player2Vertical bool   `json:"player2_vertical"`
}

func ToSnapshot(s GameState) Snapshot {
	return Snapshot{
		Quota:           s.Rules.Quota,
		ShipLength:      s.Rules.ShipLength,
		Phase:           s.Phase.String(),
		Turn:            s.Turn.String(),
		Winner:          s.Winner.String(),
		Player1Ships:    flattenShips(s.Fleets[SideA].Ships),
		Player2Ships:    flattenShips(s.Fleets[SideB].Ships),
		Player1Hits:     nonNil(s.Fleets[SideA].Hits),
		Player2Hits:     nonNil(s.Fleets[SideB].Hits),
		Player1Misses:   nonNil(s.Fleets[SideA].Misses),
		Player2Misses:   nonNil(s.Fleets[SideB].Misses),
		Player1Vertical: s.Fleets[SideA].Orientation == Vertical,
		Player2Vertical: s.Fleets[SideB].Orientation == Vertical,
	}
}

// FromSnapshot rebuilds a GameState and checks every invariant the engine
// maintains, so a corrupted or hand-edited record is rejected instead of
// being played on.
func FromSnapshot(snap Snapshot) (GameState, error) {
	rules := Rules{Quota: snap.Quota, ShipLength: snap.ShipLength}
	if err := rules.Validate(); err != nil {
		return GameState{}, invalidSnapshot(err, "rules")
	}
	phase, err := ParsePhase(snap.Phase)
	if err != nil {
		return GameState{}, invalidSnapshot(err, "phase")
	}
	turn, err := ParseSide(snap.Turn)
	if err != nil || !turn.Valid() {
		return GameState{}, invalidSnapshot(err, "turn")
	}
	winner, err := ParseSide(snap.Winner)
	if err != nil {
		return GameState{}, invalidSnapshot(err, "winner")
	}
	if (phase == PhaseGameOver) != winner.Valid() {
		return GameState{}, invalidSnapshot(nil, "winner does not match phase '%s'", phase)
	}
	s := NewGameState(rules)
	s.Phase, s.Turn, s.Winner = phase, turn, winner
	lists := [2]struct {
		ships, hits, misses []int
		vertical            bool
	}{
		{snap.Player1Ships, snap.Player1Hits, snap.Player1Misses, snap.Player1Vertical},
		{snap.Player2Ships, snap.Player2Hits, snap.Player2Misses, snap.Player2Vertical},
	}
	for _, side := range []Side{SideA, SideB} {
		ships, err := unflattenShips(lists[side].ships, rules)
		if err != nil {
			return GameState{}, invalidSnapshot(err, "%s ships", side)
		}
		if phase != PhasePlacement && len(ships) != rules.Quota {
			return GameState{}, invalidSnapshot(nil, "%s has %d ships in phase '%s'", side, len(ships), phase)
		}
		s.Fleets[side].Ships = ships
		if lists[side].vertical {
			s.Fleets[side].Orientation = Vertical
		}
	}
	for _, side := range []Side{SideA, SideB} {
		hits, misses := lists[side].hits, lists[side].misses
		if phase == PhasePlacement && len(hits)+len(misses) > 0 {
			return GameState{}, invalidSnapshot(nil, "%s attacked during placement", side)
		}
		if err := validateShots(hits, misses); err != nil {
			return GameState{}, invalidSnapshot(err, "%s shots", side)
		}
		enemy := &s.Fleets[side.Opponent()]
		for _, index := range hits {
			i := enemy.shipAt(index)
			if i < 0 {
				return GameState{}, invalidSnapshot(nil, "%s hit %s where no ship is", side, ToCoord(index))
			}
			enemy.Ships[i].Hits++
		}
		for _, index := range misses {
			if enemy.shipAt(index) >= 0 {
				return GameState{}, invalidSnapshot(nil, "%s missed %s where a ship is", side, ToCoord(index))
			}
		}
		s.Fleets[side].Hits = nilIfEmpty(hits)
		s.Fleets[side].Misses = nilIfEmpty(misses)
		won := len(hits) >= rules.FleetCells()
		if won != (winner == side) {
			return GameState{}, invalidSnapshot(nil, "%s hits do not match the winner", side)
		}
	}
	return s, nil
}

func invalidSnapshot(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg += ": " + err.Error()
	}
	return errors.WithMessage(ErrInvalidSnapshot, msg)
}

func flattenShips(ships []Ship) []int {
	result := make([]int, 0)
	for _, ship := range ships {
		result = append(result, ship.Cells...)
	}
	return result
}

func unflattenShips(cells []int, rules Rules) ([]Ship, error) {
	if len(cells)%rules.ShipLength != 0 {
		return nil, errors.Errorf("%d cells do not split into ships of length %d", len(cells), rules.ShipLength)
	}
	count := len(cells) / rules.ShipLength
	if count > rules.Quota {
		return nil, errors.Errorf("%d ships exceed the quota of %d", count, rules.Quota)
	}
	if count == 0 {
		return nil, nil
	}
	ships := make([]Ship, 0, count)
	var fleet Fleet
	for i := 0; i < count; i++ {
		chunk := cells[i*rules.ShipLength : (i+1)*rules.ShipLength]
		if !isStraightRun(chunk, rules.ShipLength) {
			return nil, errors.Errorf("ship %v is not a straight run", chunk)
		}
		for _, cell := range chunk {
			if fleet.shipAt(cell) >= 0 {
				return nil, errors.WithMessagef(ErrOverlap, "ship %v", chunk)
			}
		}
		ship := Ship{Cells: cloneInts(chunk)}
		fleet.Ships = append(fleet.Ships, ship)
		ships = append(ships, ship)
	}
	return ships, nil
}

func isStraightRun(chunk []int, length int) bool {
	if !IndexInBounds(chunk[0]) {
		return false
	}
	start := ToCoord(chunk[0])
	for _, o := range []Orientation{Horizontal, Vertical} {
		cells, err := ShipCells(start, o, length)
		if err == nil && equalInts(cells, chunk) {
			return true
		}
	}
	return false
}

func validateShots(hits, misses []int) error {
	seen := make(map[int]struct{}, len(hits)+len(misses))
	for _, list := range [][]int{hits, misses} {
		for _, index := range list {
			if !IndexInBounds(index) {
				return errors.WithMessagef(ErrOutOfBounds, "cell index %d", index)
			}
			if _, ok := seen[index]; ok {
				return errors.Errorf("cell %s is recorded twice", ToCoord(index))
			}
			seen[index] = struct{}{}
		}
	}
	return nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return cloneInts(v)
}

func nilIfEmpty(v []int) []int {
	if len(v) == 0 {
		return nil
	}
	return cloneInts(v)
}
