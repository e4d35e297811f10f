// Package hexentity implements the Cell and Column entities (C3): their
// truth/display state and their derived hints (members, value, together),
// cached and invalidated per the mutation path described in spec (s)4.2.
package hexentity

import (
	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// Kind is the truth of a cell: what it really is. Play and solving never
// change it; only an edit through SetKind does.
type Kind int

const (
	KindEmpty Kind = iota
	KindFull
)

// Display is what the player currently sees.
type Display int

const (
	DisplayUnknown Display = iota
	DisplayEmpty
	DisplayFull
)

// Together is the tri-state togetherness flag: undetermined (show_info < 2
// for cells, or show_info false for columns), or a definite true/false.
type Together int

const (
	TogetherNone Together = iota
	TogetherFalse
	TogetherTrue
)

// Cell is a hex grid entity carrying truth, display state, and a hint.
type Cell struct {
	coord hexcoord.Coordinate
	grid  *hexgrid.Grid

	kind     Kind
	revealed bool
	showInfo int // 0: no number, 1: bare count, 2: count + together

	cacheValid bool
	members    []*Cell
	value      int
	together   Together
}

// NewCell creates a cell at coord bound to grid, with truth kind. The cell
// is not placed into the grid by this constructor; callers place it via
// grid.Place so that neighbor lookups see a consistent grid.
func NewCell(coord hexcoord.Coordinate, grid *hexgrid.Grid, kind Kind) *Cell {
	return &Cell{coord: coord, grid: grid, kind: kind}
}

// Coord implements hexgrid.Entity.
func (c *Cell) Coord() hexcoord.Coordinate { return c.coord }

// EntityKind implements hexgrid.Entity.
func (c *Cell) EntityKind() hexgrid.EntityKind { return hexgrid.KindCell }

// Kind returns the cell's truth.
func (c *Cell) Kind() Kind { return c.kind }

// SetKind mutates the cell's truth and invalidates this cell's cache plus
// every flower-neighbor's cache (invariant 4: a neighbor's derived
// properties depend on this cell's kind).
func (c *Cell) SetKind(k Kind) {
	if c.kind == k {
		return
	}
	c.kind = k
	c.invalidate()
	if c.grid == nil {
		return
	}
	for _, fc := range c.coord.FlowerNeighbors() {
		if e, ok := c.grid.At(fc); ok {
			if nc, isCell := e.(*Cell); isCell {
				nc.invalidate()
			}
		}
	}
}

// Revealed reports whether the player has revealed this cell.
func (c *Cell) Revealed() bool { return c.revealed }

// SetRevealed marks the cell revealed or covers it again (editor/undo use).
// Display is always derived from (revealed, kind), so this alone keeps
// invariant 3 (display never contradicts truth) intact by construction.
func (c *Cell) SetRevealed(revealed bool) { c.revealed = revealed }

// Display returns what the player currently sees.
func (c *Cell) Display() Display {
	if !c.revealed {
		return DisplayUnknown
	}
	if c.kind == KindFull {
		return DisplayFull
	}
	return DisplayEmpty
}

// ShowInfo returns the hint level: 0 no number, 1 bare count, 2 count+together.
func (c *Cell) ShowInfo() int { return c.showInfo }

// SetShowInfo sets the hint level and invalidates this cell's cache.
func (c *Cell) SetShowInfo(level int) {
	if c.showInfo == level {
		return
	}
	c.showInfo = level
	c.invalidate()
}

// invalidate drops this cell's memoized members/value/together.
func (c *Cell) invalidate() { c.cacheValid = false }

// recompute forces the memoized fields to be rebuilt now rather than lazily.
func (c *Cell) recompute() { c.ensureCache() }

func (c *Cell) ensureCache() {
	if c.cacheValid {
		return
	}
	var offsets [][2]int
	if c.kind == KindEmpty {
		offsets = neighborOffsetSlice()
	} else {
		offsets = flowerOffsetSlice()
	}
	members := make([]*Cell, 0, len(offsets))
	full := 0
	if c.grid != nil {
		for _, d := range offsets {
			nc := c.coord.Add(d[0], d[1])
			e, ok := c.grid.At(nc)
			if !ok {
				continue
			}
			mc, isCell := e.(*Cell)
			if !isCell {
				continue
			}
			members = append(members, mc)
			if mc.kind == KindFull {
				full++
			}
		}
	}
	c.members = members
	c.value = full
	c.together = computeTogetherGraph(members)
	c.cacheValid = true
}

// Members returns the cell's member set: its direct neighbors if it is
// Empty, or its flower (two-ring) neighbors if it is Full. Order is
// clockwise starting from north, with non-existent neighbors skipped.
func (c *Cell) Members() []*Cell {
	c.ensureCache()
	return c.members
}

// Value returns the count of Full cells among Members, and whether the
// hint level is high enough (show_info >= 1) to expose a value at all.
func (c *Cell) Value() (int, bool) {
	c.ensureCache()
	return c.value, c.showInfo >= 1
}

// TogetherHint returns the togetherness flag, or TogetherNone if show_info < 2.
func (c *Cell) TogetherHint() Together {
	if c.showInfo < 2 {
		return TogetherNone
	}
	c.ensureCache()
	return c.together
}

// IsNeighbor reports whether other is one of c's six direct hex neighbors.
func (c *Cell) IsNeighbor(other *Cell) bool {
	if other == nil {
		return false
	}
	dx := other.coord.X - c.coord.X
	dy := other.coord.Y - c.coord.Y
	for _, d := range hexcoord.NeighborOffsets {
		if d[0] == dx && d[1] == dy {
			return true
		}
	}
	return false
}

func neighborOffsetSlice() [][2]int {
	o := hexcoord.NeighborOffsets
	out := make([][2]int, len(o))
	for i, d := range o {
		out[i] = d
	}
	return out
}

func flowerOffsetSlice() [][2]int {
	o := hexcoord.FlowerOffsets()
	out := make([][2]int, len(o))
	for i, d := range o {
		out[i] = d
	}
	return out
}

// computeTogetherGraph reports whether the Full cells among members form a
// single connected component under direct hex adjacency. Zero or one Full
// members are trivially "together".
func computeTogetherGraph(members []*Cell) Together {
	var full []*Cell
	for _, m := range members {
		if m.kind == KindFull {
			full = append(full, m)
		}
	}
	if len(full) <= 1 {
		return TogetherTrue
	}
	seen := make(map[*Cell]bool, len(full))
	stack := []*Cell{full[0]}
	seen[full[0]] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, other := range full {
			if seen[other] {
				continue
			}
			if cur.IsNeighbor(other) {
				seen[other] = true
				stack = append(stack, other)
			}
		}
	}
	if len(seen) == len(full) {
		return TogetherTrue
	}
	return TogetherFalse
}
