// Package hexcoord implements the axial-like coordinate system used by the
// hex grid: neighbor offsets, the two-ring "flower" neighborhood, and the
// three column-marker directions.
package hexcoord

import (
	"math"
	"sort"
)

// Coordinate is an ordered pair (x, y) locating an entity in the grid.
// Moving to a neighbor changes y by +-1 or +-2 and x by 0 or +-1.
type Coordinate struct {
	X, Y int
}

// Add returns the coordinate offset by (dx, dy).
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// NeighborOffsets are the six direct-neighbor deltas, clockwise from north.
var NeighborOffsets = [6][2]int{
	{0, -2},
	{1, -1},
	{1, 1},
	{0, 2},
	{-1, 1},
	{-1, -1},
}

// Neighbors returns the six adjacent coordinates, clockwise from north.
func (c Coordinate) Neighbors() [6]Coordinate {
	var out [6]Coordinate
	for i, d := range NeighborOffsets {
		out[i] = c.Add(d[0], d[1])
	}
	return out
}

// flowerOffsets is computed once from NeighborOffsets: the union of the six
// direct offsets with every sum of two direct offsets, deduplicated and
// excluding (0,0), each ring ordered clockwise from north. This mirrors how
// the original sixcells editor derives the
// two-ring "flower" set from the direct neighbor deltas rather than
// hardcoding eighteen literals (see original_source/common.py's Hex
// neighbor handling).
var flowerOffsets = buildFlowerOffsets()

func buildFlowerOffsets() [18][2]int {
	seen := make(map[[2]int]bool, 18)
	var ring1 [][2]int
	for _, d := range NeighborOffsets {
		seen[d] = true
		ring1 = append(ring1, d)
	}
	var ring2 [][2]int
	for _, a := range NeighborOffsets {
		for _, b := range NeighborOffsets {
			d := [2]int{a[0] + b[0], a[1] + b[1]}
			if d == [2]int{0, 0} {
				continue
			}
			if seen[d] {
				continue
			}
			seen[d] = true
			ring2 = append(ring2, d)
		}
	}
	// Order the second ring clockwise from north, like the direct ring.
	clockwise := func(d [2]int) float64 {
		a := math.Atan2(float64(d[0]), float64(-d[1]))
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	sort.Slice(ring2, func(i, j int) bool { return clockwise(ring2[i]) < clockwise(ring2[j]) })
	var out [18][2]int
	i := 0
	for _, d := range ring1 {
		out[i] = d
		i++
	}
	for _, d := range ring2 {
		if i >= 18 {
			break
		}
		out[i] = d
		i++
	}
	return out
}

// FlowerOffsets returns the eighteen offsets of the two-ring neighborhood.
func FlowerOffsets() [18][2]int {
	return flowerOffsets
}

// FlowerNeighbors returns the eighteen coordinates of the two-ring
// neighborhood, clockwise ring-by-ring starting from the direct ring.
func (c Coordinate) FlowerNeighbors() [18]Coordinate {
	var out [18]Coordinate
	for i, d := range flowerOffsets {
		out[i] = c.Add(d[0], d[1])
	}
	return out
}

// ColumnAngle is one of the three orientations a column marker can have.
type ColumnAngle int

const (
	AngleNegative60 ColumnAngle = -60
	AngleZero       ColumnAngle = 0
	AnglePositive60 ColumnAngle = 60
)

// columnSteps maps each column angle to its per-step (dx, dy) offset.
var columnSteps = map[ColumnAngle][2]int{
	AngleNegative60: {1, 1},
	AngleZero:       {0, 1},
	AnglePositive60: {-1, 1},
}

// Step returns the (dx, dy) offset for one step in the column's direction.
func (a ColumnAngle) Step() (int, int) {
	d := columnSteps[a]
	return d[0], d[1]
}

// Valid reports whether a is one of the three allowed column angles.
func (a ColumnAngle) Valid() bool {
	_, ok := columnSteps[a]
	return ok
}
