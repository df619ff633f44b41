package computer

import (
	"math/rand"

	"github.com/kiryu-dev/battleship/internal/engine"
)

// TargetingMemory carries the hunt/target state between computer turns.
// The caller owns it and hands it back on every call.
type TargetingMemory struct {
	Pending []int `json:"pending"`
}

func (m TargetingMemory) clone() TargetingMemory {
	if m.Pending == nil {
		return TargetingMemory{}
	}
	pending := make([]int, len(m.Pending))
	copy(pending, m.Pending)
	return TargetingMemory{Pending: pending}
}

func (m TargetingMemory) contains(index int) bool {
	for _, p := range m.Pending {
		if p == index {
			return true
		}
	}
	return false
}

// NextTarget picks the cell side should attack next. Pending candidates go
// first; without them a random cell that has not been attacked is drawn.
func NextTarget(s engine.GameState, side engine.Side, mem TargetingMemory,
	rng *rand.Rand) (engine.Coord, TargetingMemory, error) {
	mem = mem.clone()
	for len(mem.Pending) > 0 {
		index := mem.Pending[0]
		mem.Pending = mem.Pending[1:]
		if !engine.IndexInBounds(index) {
			continue
		}
		target := engine.ToCoord(index)
		if !engine.Attacked(s, side, target) {
			if len(mem.Pending) == 0 {
				mem.Pending = nil
			}
			return target, mem, nil
		}
	}
	mem.Pending = nil
	if unattackedCount(s, side) == 0 {
		return engine.Coord{}, mem, ErrNoTargets
	}
	for {
		target := engine.ToCoord(rng.Intn(engine.CellCount))
		if !engine.Attacked(s, side, target) {
			return target, mem, nil
		}
	}
}

// Observe updates the memory with the outcome of side's attack at target.
// s is the state after the attack.
func Observe(s engine.GameState, side engine.Side, target engine.Coord, outcome engine.AttackOutcome,
	mem TargetingMemory) TargetingMemory {
	mem = mem.clone()
	switch {
	case outcome.IsHit():
		var found []int
		for _, n := range engine.Neighbors(target) {
			index := n.Index()
			if engine.Attacked(s, side, n) || mem.contains(index) || containsInt(found, index) {
				continue
			}
			found = append(found, index)
		}
		if len(mem.Pending) == 0 {
			mem.Pending = found
		} else {
			mem.Pending = append(mem.Pending, found...)
		}
	case outcome == engine.Miss:
		mem.Pending = remove(mem.Pending, target.Index())
	}
	return mem
}

func unattackedCount(s engine.GameState, side engine.Side) int {
	count := 0
	for i := 0; i < engine.CellCount; i++ {
		if !engine.Attacked(s, side, engine.ToCoord(i)) {
			count++
		}
	}
	return count
}

func remove(v []int, x int) []int {
	var result []int
	for _, e := range v {
		if e != x {
			result = append(result, e)
		}
	}
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
