package hexentity

import (
	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// Column is a column-marker entity: it carries no truth of its own, only a
// direction and an optional hint over the ordered run of cells it covers.
type Column struct {
	coord    hexcoord.Coordinate
	grid     *hexgrid.Grid
	angle    hexcoord.ColumnAngle
	showInfo bool

	cacheValid bool
	members    []*Cell
	value      int
	together   Together
}

// NewColumn creates a column marker at coord bound to grid, with the given
// orientation.
func NewColumn(coord hexcoord.Coordinate, grid *hexgrid.Grid, angle hexcoord.ColumnAngle) *Column {
	return &Column{coord: coord, grid: grid, angle: angle}
}

// Coord implements hexgrid.Entity.
func (col *Column) Coord() hexcoord.Coordinate { return col.coord }

// EntityKind implements hexgrid.Entity.
func (col *Column) EntityKind() hexgrid.EntityKind { return hexgrid.KindColumn }

// Angle returns the column's orientation.
func (col *Column) Angle() hexcoord.ColumnAngle { return col.angle }

// SetAngle changes the column's orientation and invalidates its cache.
func (col *Column) SetAngle(a hexcoord.ColumnAngle) {
	if col.angle == a {
		return
	}
	col.angle = a
	col.invalidate()
}

// ShowInfo reports whether the column exposes a hint at all.
func (col *Column) ShowInfo() bool { return col.showInfo }

// SetShowInfo toggles the hint and invalidates the cache.
func (col *Column) SetShowInfo(v bool) {
	if col.showInfo == v {
		return
	}
	col.showInfo = v
	col.invalidate()
}

func (col *Column) invalidate() { col.cacheValid = false }

func (col *Column) recompute() { col.ensureCache() }

func (col *Column) ensureCache() {
	if col.cacheValid {
		return
	}
	var members []*Cell
	full := 0
	if col.grid != nil && col.angle.Valid() {
		if bounds, ok := col.grid.Bounds(); ok {
			dx, dy := col.angle.Step()
			cur := col.coord
			for {
				cur = cur.Add(dx, dy)
				if cur.X < bounds.MinX || cur.X > bounds.MaxX || cur.Y < bounds.MinY || cur.Y > bounds.MaxY {
					break
				}
				e, ok := col.grid.At(cur)
				if !ok {
					// A decoded column's cells are two steps of the raw
					// per-hop offset apart (the frame's row/col mapping
					// spaces same-column cells by dy=2, not dy=1), so
					// every other hop lands on a coordinate with no
					// entity. Keep stepping rather than stopping here.
					continue
				}
				cell, isCell := e.(*Cell)
				if !isCell {
					continue
				}
				members = append(members, cell)
				if cell.kind == KindFull {
					full++
				}
			}
		}
	}
	col.members = members
	col.value = full
	col.together = computeTogetherRun(members)
	col.cacheValid = true
}

// Members returns the ordered run of cells obtained by stepping in the
// column's direction from its coordinate until the step falls outside the
// grid's bounds, skipping over any intermediate coordinate that holds no
// cell.
func (col *Column) Members() []*Cell {
	col.ensureCache()
	return col.members
}

// Value returns the count of Full cells among Members.
func (col *Column) Value() int {
	col.ensureCache()
	return col.value
}

// TogetherHint returns the togetherness flag, or TogetherNone if show_info is false.
func (col *Column) TogetherHint() Together {
	if !col.showInfo {
		return TogetherNone
	}
	col.ensureCache()
	return col.together
}

// computeTogetherRun reports whether the Full members form a single
// contiguous run in the ordered member list (at most one maximal run).
func computeTogetherRun(members []*Cell) Together {
	runs := 0
	inRun := false
	for _, m := range members {
		if m.kind == KindFull {
			if !inRun {
				runs++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	if runs <= 1 {
		return TogetherTrue
	}
	return TogetherFalse
}
