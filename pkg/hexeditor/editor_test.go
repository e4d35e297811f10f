package hexeditor

import (
	"errors"
	"testing"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

func TestPlaceCellThenUndoRemovesIt(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	coord := hexcoord.Coordinate{X: 0, Y: 0}

	if err := ed.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if _, ok := g.At(coord); !ok {
		t.Fatalf("expected cell placed at %v", coord)
	}

	if !ed.Undo() {
		t.Fatalf("expected Undo to succeed")
	}
	if _, ok := g.At(coord); ok {
		t.Fatalf("expected cell removed after undo")
	}

	if !ed.Redo() {
		t.Fatalf("expected Redo to succeed")
	}
	if _, ok := g.At(coord); !ok {
		t.Fatalf("expected cell restored after redo")
	}
}

func TestUndoWithEmptyHistoryReturnsFalse(t *testing.T) {
	ed := New(hexgrid.New())
	if ed.Undo() {
		t.Fatalf("expected Undo on empty history to return false")
	}
}

func TestNewEditAfterUndoClearsRedo(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	c0 := hexcoord.Coordinate{X: 0, Y: 0}
	c1 := hexcoord.Coordinate{X: 2, Y: 0}

	if err := ed.PlaceCell(c0, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	ed.Undo()
	if err := ed.PlaceCell(c1, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if ed.Redo() {
		t.Fatalf("expected Redo to be unavailable after a fresh edit")
	}
}

func TestPlaceCellRejectsConflict(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := ed.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	err := ed.PlaceCell(coord, hexentity.KindEmpty)
	if !errors.Is(err, hexerr.ErrGridConflict) {
		t.Fatalf("expected ErrGridConflict, got %v", err)
	}
}

func TestMoveSelectionTranslatesGroup(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	a := hexcoord.Coordinate{X: 0, Y: 0}
	b := hexcoord.Coordinate{X: 2, Y: 0}
	if err := ed.PlaceCell(a, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell a: %v", err)
	}
	if err := ed.PlaceCell(b, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell b: %v", err)
	}
	ed.Select(a)
	ed.Select(b)

	if err := ed.MoveSelection(0, 2); err != nil {
		t.Fatalf("MoveSelection: %v", err)
	}

	if _, ok := g.At(a); ok {
		t.Fatalf("expected origin a vacated")
	}
	if _, ok := g.At(b); ok {
		t.Fatalf("expected origin b vacated")
	}
	if _, ok := g.At(hexcoord.Coordinate{X: 0, Y: 2}); !ok {
		t.Fatalf("expected a's destination occupied")
	}
	if _, ok := g.At(hexcoord.Coordinate{X: 2, Y: 2}); !ok {
		t.Fatalf("expected b's destination occupied")
	}
}

func TestMoveSelectionRejectsCollisionOutsideGroup(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	a := hexcoord.Coordinate{X: 0, Y: 0}
	blocker := hexcoord.Coordinate{X: 0, Y: 2}
	if err := ed.PlaceCell(a, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell a: %v", err)
	}
	if err := ed.PlaceCell(blocker, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell blocker: %v", err)
	}
	ed.Select(a)

	err := ed.MoveSelection(0, 2)
	if !errors.Is(err, hexerr.ErrGridConflict) {
		t.Fatalf("expected ErrGridConflict, got %v", err)
	}
	if _, ok := g.At(a); !ok {
		t.Fatalf("expected rejected move to leave original placement intact")
	}
}

func TestMoveSelectionAllowsSwapWithinGroup(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	a := hexcoord.Coordinate{X: 0, Y: 0}
	b := hexcoord.Coordinate{X: 0, Y: 2}
	if err := ed.PlaceCell(a, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell a: %v", err)
	}
	if err := ed.PlaceCell(b, hexentity.KindEmpty); err != nil {
		t.Fatalf("PlaceCell b: %v", err)
	}
	ed.Select(a)
	ed.Select(b)

	if err := ed.MoveSelection(0, 2); err != nil {
		t.Fatalf("expected the move to both destinations within the group to be allowed: %v", err)
	}
}

func TestToggleKindFlipsFullness(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := ed.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	if err := ed.ToggleKind(coord); err != nil {
		t.Fatalf("ToggleKind: %v", err)
	}
	e, _ := g.At(coord)
	c := e.(*hexentity.Cell)
	if c.Kind() != hexentity.KindEmpty {
		t.Fatalf("expected toggled cell to be Empty, got %v", c.Kind())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	ed.historyLimit = 3

	for i := 0; i < 10; i++ {
		coord := hexcoord.Coordinate{X: 0, Y: i * 2}
		if err := ed.PlaceCell(coord, hexentity.KindFull); err != nil {
			t.Fatalf("PlaceCell %d: %v", i, err)
		}
	}
	if len(ed.undoStack) != 3 {
		t.Fatalf("expected undo stack bounded to 3, got %d", len(ed.undoStack))
	}
}

func TestRemoveIsUndoable(t *testing.T) {
	g := hexgrid.New()
	ed := New(g)
	coord := hexcoord.Coordinate{X: 0, Y: 0}
	if err := ed.PlaceCell(coord, hexentity.KindFull); err != nil {
		t.Fatalf("PlaceCell: %v", err)
	}
	ed.Remove(coord)
	if _, ok := g.At(coord); ok {
		t.Fatalf("expected cell removed")
	}
	if !ed.Undo() {
		t.Fatalf("expected Undo to succeed")
	}
	if _, ok := g.At(coord); !ok {
		t.Fatalf("expected cell restored by undo")
	}
}
