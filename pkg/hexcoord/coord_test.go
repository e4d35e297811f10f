package hexcoord

import "testing"

func TestNeighborOffsetsClockwiseFromNorth(t *testing.T) {
	want := [6][2]int{{0, -2}, {1, -1}, {1, 1}, {0, 2}, {-1, 1}, {-1, -1}}
	if NeighborOffsets != want {
		t.Fatalf("NeighborOffsets = %v, want %v", NeighborOffsets, want)
	}
}

func TestFlowerOffsetsHasEighteenDistinctNonZero(t *testing.T) {
	offs := FlowerOffsets()
	seen := make(map[[2]int]bool, len(offs))
	for _, d := range offs {
		if d == [2]int{0, 0} {
			t.Fatalf("flower offset is zero")
		}
		if seen[d] {
			t.Fatalf("duplicate flower offset %v", d)
		}
		seen[d] = true
	}
	if len(seen) != 18 {
		t.Fatalf("got %d distinct flower offsets, want 18", len(seen))
	}
}

func TestFlowerContainsDirectRing(t *testing.T) {
	offs := FlowerOffsets()
	seen := make(map[[2]int]bool, len(offs))
	for _, d := range offs {
		seen[d] = true
	}
	for _, d := range NeighborOffsets {
		if !seen[d] {
			t.Fatalf("flower set missing direct neighbor %v", d)
		}
	}
}

func TestCoordinateNeighbors(t *testing.T) {
	c := Coordinate{X: 5, Y: 5}
	got := c.Neighbors()
	want := [6]Coordinate{
		{5, 3}, {6, 4}, {6, 6}, {5, 7}, {4, 6}, {4, 4},
	}
	if got != want {
		t.Fatalf("Neighbors() = %v, want %v", got, want)
	}
}

func TestColumnAngleStep(t *testing.T) {
	cases := []struct {
		angle  ColumnAngle
		dx, dy int
	}{
		{AngleNegative60, 1, 1},
		{AngleZero, 0, 1},
		{AnglePositive60, -1, 1},
	}
	for _, c := range cases {
		dx, dy := c.angle.Step()
		if dx != c.dx || dy != c.dy {
			t.Fatalf("angle %v step = (%d,%d), want (%d,%d)", c.angle, dx, dy, c.dx, c.dy)
		}
	}
	if ColumnAngle(30).Valid() {
		t.Fatalf("expected angle 30 to be invalid")
	}
}
