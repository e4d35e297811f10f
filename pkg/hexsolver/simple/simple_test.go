package simple

import (
	"testing"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

func place(g *hexgrid.Grid, x, y int, k hexentity.Kind) *hexentity.Cell {
	c := hexentity.NewCell(hexcoord.Coordinate{X: x, Y: y}, g, k)
	g.Place(c, c.Coord())
	return c
}

// TestE1AllFullNeighborsForceEmpty mirrors spec (s)8's E1 scenario: a
// revealed cell whose value already equals the count of known-Full
// neighbors forces every remaining unknown neighbor Empty.
func TestE1AllFullNeighborsForceEmpty(t *testing.T) {
	g := hexgrid.New()
	center := place(g, 0, 0, hexentity.KindEmpty)
	center.SetRevealed(true)
	center.SetShowInfo(1)

	full := place(g, 0, -2, hexentity.KindFull)
	full.SetRevealed(true)

	unknownA := place(g, 1, -1, hexentity.KindEmpty)
	unknownB := place(g, 1, 1, hexentity.KindEmpty)
	hexentity.FullUpdate(g)

	conclusions := Solve(g)
	if len(conclusions) != 2 {
		t.Fatalf("expected 2 forced conclusions (the two remaining unknown neighbors), got %d", len(conclusions))
	}
	for _, c := range conclusions {
		if c.Cell != unknownA && c.Cell != unknownB {
			t.Fatalf("unexpected conclusion for an unrelated cell")
		}
		if c.Kind != hexentity.KindEmpty {
			t.Fatalf("expected unknown neighbor forced Empty, got %v", c.Kind)
		}
	}
}

// TestE2RemainingUnknownsForcedFull covers the (m-k)-e==0 branch: once
// every possible Empty slot is accounted for, the rest must be Full.
func TestE2RemainingUnknownsForcedFull(t *testing.T) {
	g := hexgrid.New()
	center := place(g, 0, 0, hexentity.KindEmpty)
	center.SetRevealed(true)
	center.SetShowInfo(1)

	// Six members (an Empty cell's direct neighbors), 5 of them already
	// known Empty: (m-k)-e = (6-1)-5 = 0, so the 6th must be Full.
	for i, d := range hexcoord.NeighborOffsets[:5] {
		e := place(g, d[0], d[1], hexentity.KindEmpty)
		e.SetRevealed(true)
		_ = i
	}
	lastCoord := hexcoord.NeighborOffsets[5]
	last := place(g, lastCoord[0], lastCoord[1], hexentity.KindFull)
	hexentity.FullUpdate(g)

	// value(center) = count of Full among its 6 members = 1 (the "last" cell).
	conclusions := Solve(g)
	found := false
	for _, c := range conclusions {
		if c.Cell == last {
			found = true
			if c.Kind != hexentity.KindFull {
				t.Fatalf("expected last neighbor forced Full, got %v", c.Kind)
			}
		}
	}
	if !found {
		t.Fatalf("expected a conclusion for the last unknown neighbor")
	}
}

// TestSolveIdempotent checks spec (s)8 property 7: running the solver
// again on a grid where every forced conclusion has been applied (cells
// revealed) yields no further conclusions.
func TestSolveIdempotent(t *testing.T) {
	g := hexgrid.New()
	center := place(g, 0, 0, hexentity.KindEmpty)
	center.SetRevealed(true)
	center.SetShowInfo(1)
	full := place(g, 0, -2, hexentity.KindFull)
	full.SetRevealed(true)
	place(g, 1, -1, hexentity.KindEmpty)
	place(g, 1, 1, hexentity.KindEmpty)
	hexentity.FullUpdate(g)

	first := Solve(g)
	if len(first) == 0 {
		t.Fatalf("expected at least one conclusion on the first pass")
	}
	for _, c := range first {
		c.Cell.SetRevealed(true)
	}
	hexentity.FullUpdate(g)

	second := Solve(g)
	if len(second) != 0 {
		t.Fatalf("expected no new conclusions once forced cells are revealed, got %d", len(second))
	}
}

func TestSolveStopsWhenNothingForced(t *testing.T) {
	g := hexgrid.New()
	center := place(g, 0, 0, hexentity.KindEmpty)
	center.SetRevealed(true)
	center.SetShowInfo(1)
	// value(center) with no neighbors placed is 0, m=0: k-f = 0-0 = 0 but
	// there are no unknown members, so nothing to force.
	hexentity.FullUpdate(g)

	if got := Solve(g); len(got) != 0 {
		t.Fatalf("expected no conclusions, got %d", len(got))
	}
}

func TestColumnConstraintForcesFull(t *testing.T) {
	g := hexgrid.New()
	col := hexentity.NewColumn(hexcoord.Coordinate{X: 0, Y: 0}, g, hexcoord.AngleZero)
	g.Place(col, col.Coord())
	a := place(g, 0, 2, hexentity.KindFull)
	a.SetRevealed(true)
	b := place(g, 0, 4, hexentity.KindFull)
	hexentity.FullUpdate(g)

	// col.Value() = 2 (both members Full in truth), a already known Full,
	// so b (m-k-e = 2-2-0 = 0) must be forced Full.
	conclusions := Solve(g)
	found := false
	for _, c := range conclusions {
		if c.Cell == b && c.Kind == hexentity.KindFull {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the column constraint to force b Full")
	}
}
