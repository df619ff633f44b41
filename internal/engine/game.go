package engine

import (
	"github.com/pkg/errors"
)

type Side int8

const (
	NoSide = Side(-1)
	SideA  = Side(0)
	SideB  = Side(1)
)

func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "player1"
	case SideB:
		return "player2"
	default:
		return ""
	}
}

func ParseSide(v string) (Side, error) {
	switch v {
	case "player1":
		return SideA, nil
	case "player2":
		return SideB, nil
	case "":
		return NoSide, nil
	default:
		return NoSide, errors.WithMessagef(ErrInvalidSide, "unknown side '%s'", v)
	}
}

type Phase byte

const (
	PhasePlacement = Phase(iota)
	PhaseBattle
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseBattle:
		return "battle"
	case PhaseGameOver:
		return "game_over"
	default:
		return "invalid"
	}
}

func ParsePhase(v string) (Phase, error) {
	switch v {
	case "placement":
		return PhasePlacement, nil
	case "battle":
		return PhaseBattle, nil
	case "game_over":
		return PhaseGameOver, nil
	default:
		return 0, errors.Errorf("unknown phase '%s'", v)
	}
}

const (
	DefaultQuota      = 2
	DefaultShipLength = 3
)

// Rules fixes the fleet every side has to place before the battle.
type Rules struct {
	Quota      int `json:"quota" yaml:"quota"`
	ShipLength int `json:"ship_length" yaml:"ship_length"`
}

func DefaultRules() Rules {
	return Rules{Quota: DefaultQuota, ShipLength: DefaultShipLength}
}

// FleetCells is the number of cells an attacker has to hit to win.
func (r Rules) FleetCells() int {
	return r.Quota * r.ShipLength
}

func (r Rules) Validate() error {
	if r.Quota <= 0 || r.ShipLength <= 0 {
		return errors.WithMessage(ErrInvalidRules, "quota and ship length must be positive")
	}
	if r.ShipLength > BoardSize {
		return errors.WithMessagef(ErrInvalidRules, "ship length %d exceeds the board", r.ShipLength)
	}
	// row packing is always achievable, so the fleet is guaranteed to fit
	if capacity := BoardSize * (BoardSize / r.ShipLength); r.Quota > capacity {
		return errors.WithMessagef(ErrInvalidRules, "%d ships of length %d do not fit the board",
			r.Quota, r.ShipLength)
	}
	return nil
}

// Fleet is everything one side owns: its ships, the outcomes of its attacks
// against the opponent and its placement orientation.
type Fleet struct {
	Ships       []Ship
	Hits        []int
	Misses      []int
	Orientation Orientation
}

func (f Fleet) clone() Fleet {
	var ships []Ship
	if f.Ships != nil {
		ships = make([]Ship, len(f.Ships))
		for i, ship := range f.Ships {
			ships[i] = ship.clone()
		}
	}
	return Fleet{
		Ships:       ships,
		Hits:        cloneInts(f.Hits),
		Misses:      cloneInts(f.Misses),
		Orientation: f.Orientation,
	}
}

func (f Fleet) shipAt(index int) int {
	for i, ship := range f.Ships {
		if ship.Occupies(index) {
			return i
		}
	}
	return -1
}

func (f Fleet) attacked(index int) bool {
	return containsInt(f.Hits, index) || containsInt(f.Misses, index)
}

type GameState struct {
	Rules  Rules
	Phase  Phase
	Turn   Side
	Winner Side
	Fleets [2]Fleet
}

func NewGameState(rules Rules) GameState {
	return GameState{
		Rules:  rules,
		Phase:  PhasePlacement,
		Turn:   SideA,
		Winner: NoSide,
	}
}

// Fleet returns a copy of the side's fleet.
func (s GameState) Fleet(side Side) Fleet {
	return s.Fleets[mustIndex(side)].clone()
}

func (s GameState) Orientation(side Side) Orientation {
	return s.Fleets[mustIndex(side)].Orientation
}

func (s GameState) Clone() GameState {
	c := s
	for i := range s.Fleets {
		c.Fleets[i] = s.Fleets[i].clone()
	}
	return c
}

func mustIndex(side Side) int {
	if !side.Valid() {
		panic("engine: invalid side")
	}
	return int(side)
}

func cloneInts(v []int) []int {
	if v == nil {
		return nil
	}
	result := make([]int, len(v))
	copy(result, v)
	return result
}

func containsInt(v []int, x int) bool {
	for _, e := range v {
		if e == x {
			return true
		}
	}
	return false
}
