package ilp

import (
	"errors"
	"testing"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// buildTogetherColumn sets up a 3-slot column (value 2, together=true)
// where the two satisfying Full/Full/Empty assignments both agree only on
// the middle slot: spec (s)8's E3-style scenario where the simple solver
// stalls (no per-member count alone is decisive) but the ILP solver's
// together span constraint forces the shared cell.
func buildTogetherColumn(t *testing.T) (*hexgrid.Grid, *hexentity.Cell, *hexentity.Cell, *hexentity.Cell) {
	t.Helper()
	g := hexgrid.New()
	col := hexentity.NewColumn(hexcoord.Coordinate{X: 0, Y: 0}, g, hexcoord.AngleZero)
	col.SetShowInfo(true)
	g.Place(col, col.Coord())

	m0 := hexentity.NewCell(hexcoord.Coordinate{X: 0, Y: 2}, g, hexentity.KindFull)
	m1 := hexentity.NewCell(hexcoord.Coordinate{X: 0, Y: 4}, g, hexentity.KindFull)
	m2 := hexentity.NewCell(hexcoord.Coordinate{X: 0, Y: 6}, g, hexentity.KindEmpty)
	g.Place(m0, m0.Coord())
	g.Place(m1, m1.Coord())
	g.Place(m2, m2.Coord())
	hexentity.FullUpdate(g)

	if col.Value() != 2 {
		t.Fatalf("test setup: col.Value() = %d, want 2", col.Value())
	}
	if col.TogetherHint() != hexentity.TogetherTrue {
		t.Fatalf("test setup: together = %v, want true", col.TogetherHint())
	}
	return g, m0, m1, m2
}

func TestColumnTogetherForcesSharedCell(t *testing.T) {
	g, _, m1, _ := buildTogetherColumn(t)

	conclusions, err := Solve(g, 2, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	var forcedM1 *Conclusion
	for i := range conclusions {
		if conclusions[i].Cell == m1 {
			forcedM1 = &conclusions[i]
		}
	}
	if forcedM1 == nil {
		t.Fatalf("expected the shared middle cell to be forced")
	}
	if forcedM1.Kind != hexentity.KindFull {
		t.Fatalf("expected the shared cell forced Full, got %v", forcedM1.Kind)
	}
	if len(conclusions) != 1 {
		t.Fatalf("expected exactly 1 forced conclusion (the endpoints stay undetermined), got %d", len(conclusions))
	}
}

func TestSolverConclusionsMatchTruth(t *testing.T) {
	g, m0, m1, m2 := buildTogetherColumn(t)

	conclusions, err := Solve(g, 2, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	truth := map[*hexentity.Cell]hexentity.Kind{m0: hexentity.KindFull, m1: hexentity.KindFull, m2: hexentity.KindEmpty}
	for _, c := range conclusions {
		if want := truth[c.Cell]; want != c.Kind {
			t.Fatalf("conclusion for a cell disagreed with its truth: got %v want %v", c.Kind, want)
		}
	}
}

func TestSolverInfeasibleRemainingReturnsError(t *testing.T) {
	g, _, _, _ := buildTogetherColumn(t)

	_, err := Solve(g, 5, nil)
	if err == nil {
		t.Fatalf("expected an error for an impossible remaining count")
	}
	if !errors.Is(err, hexerr.ErrSolverInfeasible) {
		t.Fatalf("expected hexerr.ErrSolverInfeasible, got %v", err)
	}
}

func TestSolveNoopOnFullyKnownGrid(t *testing.T) {
	g := hexgrid.New()
	c := hexentity.NewCell(hexcoord.Coordinate{X: 0, Y: 0}, g, hexentity.KindFull)
	c.SetRevealed(true)
	g.Place(c, c.Coord())
	hexentity.FullUpdate(g)

	conclusions, err := Solve(g, 0, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(conclusions) != 0 {
		t.Fatalf("expected no conclusions when nothing is unknown, got %d", len(conclusions))
	}
}
