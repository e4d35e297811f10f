// Package hexscene implements the abstract library surface of spec (s)6:
// load_text/save_text, reveal, solve_step/solve_complete, undo/redo, and
// the remaining/mistakes counters, wiring the grid, entities, both
// solvers, and the editor together behind one owning type.
package hexscene

import (
	"fmt"

	"github.com/hexsolve/hexsolve/pkg/codec"
	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexeditor"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexsolver/ilp"
	"github.com/hexsolve/hexsolve/pkg/hexsolver/ilp/backend"
	"github.com/hexsolve/hexsolve/pkg/hexsolver/simple"
)

// Outcome is the result of revealing a cell.
type Outcome int

const (
	// Correct means the revealed cell matched what the player expected
	// (or, for re-revealing an already-revealed cell, changed nothing).
	Correct Outcome = iota
	// Mistake means the player revealed a covered cell of the wrong kind.
	Mistake
)

// Scene owns a grid and its editor, and tracks the mistake counter. It is
// the single conceptual owner of all shared resources — grid, entity
// caches, selection, undo history — described by spec (s)5.
type Scene struct {
	title       string
	author      string
	information string

	editor   *hexeditor.Editor
	mistakes int
	solving  bool
}

// LoadText parses level text into a ready scene (spec (s)6's load_text).
func LoadText(s string) (*Scene, error) {
	doc, err := codec.Decode(s)
	if err != nil {
		return nil, err
	}
	hexentity.FullUpdate(doc.Grid)
	return &Scene{
		title:       doc.Title,
		author:      doc.Author,
		information: doc.Information,
		editor:      hexeditor.New(doc.Grid),
	}, nil
}

// SaveText emits the scene's grid back to level text (spec (s)6's
// save_text(scene, {padding, display})).
func (sc *Scene) SaveText(opts codec.EncodeOptions) (string, hexerr.Warning, error) {
	doc := codec.Document{Title: sc.title, Author: sc.author, Information: sc.information, Grid: sc.editor.Grid()}
	return codec.Encode(doc, opts)
}

// Grid exposes the underlying grid for callers (render targets, export)
// that need read-only iteration.
func (sc *Scene) Grid() *hexgrid.Grid { return sc.editor.Grid() }

// Editor exposes the underlying editor for callers that drive edits
// directly (e.g. a GUI layer built outside this module).
func (sc *Scene) Editor() *hexeditor.Editor { return sc.editor }

// Reveal reveals the cell at coord. A cell that is already revealed is
// re-revealed as Correct and does not touch the mistake counter —
// clicking an already-revealed cell is not a mistake, only clicking the
// wrong color on a covered cell is, per original_source/player.py.
func (sc *Scene) Reveal(coord hexcoord.Coordinate, expect hexentity.Kind) (Outcome, error) {
	e, ok := sc.editor.Grid().At(coord)
	if !ok {
		return Mistake, fmt.Errorf("%w: no cell at (%d,%d)", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	c, isCell := e.(*hexentity.Cell)
	if !isCell {
		return Mistake, fmt.Errorf("%w: entity at (%d,%d) is not a cell", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	if c.Revealed() {
		return Correct, nil
	}
	c.SetRevealed(true)
	hexentity.FullUpdate(sc.editor.Grid())
	if c.Kind() != expect {
		sc.mistakes++
		hexlog.Debug("hexscene: mistake at (%d,%d), total %d", coord.X, coord.Y, sc.mistakes)
		return Mistake, nil
	}
	return Correct, nil
}

// Remaining counts the Full cells not yet revealed. Only Full cells ever
// count; an unrevealed Empty cell never contributes, per
// original_source/player.py.
func (sc *Scene) Remaining() int {
	remaining := 0
	for _, e := range sc.editor.Grid().IterCells() {
		c := e.(*hexentity.Cell)
		if c.Kind() == hexentity.KindFull && !c.Revealed() {
			remaining++
		}
	}
	return remaining
}

// Mistakes returns the running mistake count.
func (sc *Scene) Mistakes() int { return sc.mistakes }

// SolveComplete reports whether every cell is revealed (spec (s)6's
// solve_complete).
func (sc *Scene) SolveComplete() bool {
	for _, e := range sc.editor.Grid().IterCells() {
		if !e.(*hexentity.Cell).Revealed() {
			return false
		}
	}
	return true
}

// SolveStep runs one pass of the simple arithmetic solver and reveals
// every cell it forces, returning the kind of each cell revealed, in the
// solver's iteration order (spec (s)6's solve_step). A re-entrant
// call while a solve is already running is a no-op returning nil, per
// spec (s)5's solving guard.
func (sc *Scene) SolveStep() []hexentity.Kind {
	if sc.solving {
		return nil
	}
	sc.solving = true
	defer func() { sc.solving = false }()

	conclusions := simple.Solve(sc.editor.Grid())
	kinds := make([]hexentity.Kind, 0, len(conclusions))
	for _, c := range conclusions {
		if c.Cell.Kind() != c.Kind {
			// A forced conclusion that disagrees with the cell's declared
			// truth means the level itself is corrupted, not that the
			// player made a mistake — spec (s)7's ContradictoryHint.
			hexlog.Error("hexscene: %v at (%d,%d)", hexerr.ErrContradictoryHint, c.Cell.Coord().X, c.Cell.Coord().Y)
			continue
		}
		if _, err := sc.Reveal(c.Cell.Coord(), c.Kind); err != nil {
			hexlog.Warning("hexscene: solve_step reveal failed: %v", err)
			continue
		}
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

// SolveILP runs the two-phase ILP solver against be (falling back
// to the backend's default branch-and-bound when be is nil) and reveals
// every cell it proves forced, returning the proved (cell, kind) pairs.
// Re-entry while a solve is already in progress is a no-op returning
// nil, per spec (s)5.
func (sc *Scene) SolveILP(be backend.Backend) ([]ilp.Conclusion, error) {
	if sc.solving {
		return nil, nil
	}
	sc.solving = true
	defer func() { sc.solving = false }()

	conclusions, err := ilp.Solve(sc.editor.Grid(), sc.Remaining(), be)
	if err != nil {
		return nil, err
	}
	for _, c := range conclusions {
		if c.Cell.Kind() != c.Kind {
			return conclusions, fmt.Errorf("%w: at (%d,%d)", hexerr.ErrContradictoryHint, c.Cell.Coord().X, c.Cell.Coord().Y)
		}
		if _, err := sc.Reveal(c.Cell.Coord(), c.Kind); err != nil {
			hexlog.Warning("hexscene: ILP reveal failed: %v", err)
		}
	}
	return conclusions, nil
}

// Undo restores the scene's grid to its state before the last edit.
func (sc *Scene) Undo() bool { return sc.editor.Undo() }

// Redo re-applies the most recently undone edit.
func (sc *Scene) Redo() bool { return sc.editor.Redo() }
