// Package hexgrid implements the sparse (x,y) -> entity grid model (C2):
// placement, removal, bounds, lookup, and the geometric overlap check used
// by the editor to refuse conflicting placements.
package hexgrid

import (
	"fmt"
	"sort"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
)

// EntityKind distinguishes the two kinds of grid occupant without hexgrid
// importing hexentity (which itself depends on hexgrid for lookups).
type EntityKind int

const (
	KindCell EntityKind = iota
	KindColumn
)

// Entity is anything placeable in the grid.
type Entity interface {
	Coord() hexcoord.Coordinate
	EntityKind() EntityKind
}

// Bounds is the inclusive bounding box of all placed entities.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the bounding box width in cells.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the bounding box height in cells.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Grid is a sparse mapping from coordinate to entity. It is the single
// owner of placement state; entities never mutate the grid on their own.
type Grid struct {
	entries     map[hexcoord.Coordinate]Entity
	boundsCache Bounds
	boundsValid bool
	hasAny      bool
}

// New creates an empty grid.
func New() *Grid {
	return &Grid{entries: make(map[hexcoord.Coordinate]Entity)}
}

// Place puts entity at coord, replacing any occupant there. Placement
// itself is always accepted (invariant 1): the grid never refuses a
// placement, only the editor's higher-level overlap policy does.
func (g *Grid) Place(e Entity, coord hexcoord.Coordinate) {
	g.entries[coord] = e
	g.boundsValid = false
}

// Clear removes every entity from the grid. Used by the editor to rebuild
// a grid from an undo/redo snapshot.
func (g *Grid) Clear() {
	g.entries = make(map[hexcoord.Coordinate]Entity)
	g.boundsValid = false
}

// Remove deletes whatever entity currently occupies coord, if any.
func (g *Grid) Remove(coord hexcoord.Coordinate) {
	if _, ok := g.entries[coord]; !ok {
		return
	}
	delete(g.entries, coord)
	g.boundsValid = false
}

// At returns the entity at coord, if any.
func (g *Grid) At(coord hexcoord.Coordinate) (Entity, bool) {
	e, ok := g.entries[coord]
	return e, ok
}

// Len returns the number of occupied coordinates.
func (g *Grid) Len() int { return len(g.entries) }

// Bounds returns the inclusive bounding box of all entities. O(n), cached
// until the next Place/Remove.
func (g *Grid) Bounds() (Bounds, bool) {
	if g.boundsValid {
		return g.boundsCache, g.hasAny
	}
	if len(g.entries) == 0 {
		g.boundsCache = Bounds{}
		g.hasAny = false
		g.boundsValid = true
		return g.boundsCache, false
	}
	first := true
	var b Bounds
	for c := range g.entries {
		if first {
			b = Bounds{MinX: c.X, MinY: c.Y, MaxX: c.X, MaxY: c.Y}
			first = false
			continue
		}
		if c.X < b.MinX {
			b.MinX = c.X
		}
		if c.X > b.MaxX {
			b.MaxX = c.X
		}
		if c.Y < b.MinY {
			b.MinY = c.Y
		}
		if c.Y > b.MaxY {
			b.MaxY = c.Y
		}
	}
	g.boundsCache = b
	g.hasAny = true
	g.boundsValid = true
	return b, true
}

// gridOrder sorts coordinates in deterministic "grid order": row-major, y
// ascending then x ascending. Both the simple solver and the codec rely on
// this order for reproducible iteration.
func gridOrder(coords []hexcoord.Coordinate) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}

func (g *Grid) sortedCoords(kind EntityKind) []hexcoord.Coordinate {
	coords := make([]hexcoord.Coordinate, 0, len(g.entries))
	for c, e := range g.entries {
		if e.EntityKind() == kind {
			coords = append(coords, c)
		}
	}
	gridOrder(coords)
	return coords
}

// IterCells returns every Cell entity in grid order (y ascending, then x).
func (g *Grid) IterCells() []Entity {
	coords := g.sortedCoords(KindCell)
	out := make([]Entity, len(coords))
	for i, c := range coords {
		out[i] = g.entries[c]
	}
	return out
}

// IterColumns returns every Column entity in grid order (y ascending, then x).
func (g *Grid) IterColumns() []Entity {
	coords := g.sortedCoords(KindColumn)
	out := make([]Entity, len(coords))
	for i, c := range coords {
		out[i] = g.entries[c]
	}
	return out
}

// IterAll returns every entity in grid order.
func (g *Grid) IterAll() []Entity {
	coords := make([]hexcoord.Coordinate, 0, len(g.entries))
	for c := range g.entries {
		coords = append(coords, c)
	}
	gridOrder(coords)
	out := make([]Entity, len(coords))
	for i, c := range coords {
		out[i] = g.entries[c]
	}
	return out
}

// overlapOffsets are the four horizontal/vertical immediate-neighbor
// deltas used by the editor's conflict check. This is deliberately a
// different geometry than the hex neighbor offsets: it is a screen-space
// adjacency test guarding against visually overlapping placements, not a
// hex-topology query.
var overlapOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Overlapping returns the entities occupying the same coordinate as e and
// its four horizontal/vertical immediate neighbors, excluding e itself.
// Used by the editor to refuse geometric conflicts.
func (g *Grid) Overlapping(e Entity) []Entity {
	c := e.Coord()
	var out []Entity
	if other, ok := g.entries[c]; ok && other != e {
		out = append(out, other)
	}
	for _, d := range overlapOffsets {
		nc := c.Add(d[0], d[1])
		if other, ok := g.entries[nc]; ok {
			out = append(out, other)
		}
	}
	return out
}

// CheckNoConflict returns hexerr.ErrGridConflict if placing e at coord
// would overlap an existing entity other than e itself. Callers (the
// editor) use this before Place when the caller's invariant requires
// rejecting conflicting placements; Place itself never rejects.
func (g *Grid) CheckNoConflict(e Entity, coord hexcoord.Coordinate) error {
	if existing, ok := g.entries[coord]; ok && existing != e {
		return fmt.Errorf("%w: coordinate (%d,%d) already occupied", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	return nil
}
