// Package hexeditor implements editor state (C7): a bounded undo/redo
// history of grid snapshots, a cell selection set, and collision-checked
// group moves.
package hexeditor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
)

// DefaultHistoryLimit is the default bounded undo depth (spec (s)4.6).
const DefaultHistoryLimit = 16

// cellState is a value snapshot of a Cell's mutable fields, so that undo
// can rebuild grid content without aliasing live entity pointers.
type cellState struct {
	kind     hexentity.Kind
	revealed bool
	showInfo int
}

type columnState struct {
	angle    hexcoord.ColumnAngle
	showInfo bool
}

type placed struct {
	coord  hexcoord.Coordinate
	isCell bool
	cell   cellState
	column columnState
}

type snapshot []placed

// historyEntry pairs a snapshot with a correlation ID, mirroring how
// mcpxcel threads a session/request ID through its telemetry fields.
type historyEntry struct {
	id   uuid.UUID
	snap snapshot
}

// Editor wraps a grid with bounded undo/redo and a selection set.
type Editor struct {
	grid         *hexgrid.Grid
	historyLimit int
	undoStack    []historyEntry
	redoStack    []historyEntry
	selection    map[hexcoord.Coordinate]bool
}

// New creates an editor over grid with the default history limit.
func New(grid *hexgrid.Grid) *Editor {
	return &Editor{grid: grid, historyLimit: DefaultHistoryLimit, selection: make(map[hexcoord.Coordinate]bool)}
}

// Grid returns the underlying grid.
func (ed *Editor) Grid() *hexgrid.Grid { return ed.grid }

func (ed *Editor) takeSnapshot() snapshot {
	all := ed.grid.IterAll()
	snap := make(snapshot, 0, len(all))
	for _, e := range all {
		switch v := e.(type) {
		case *hexentity.Cell:
			snap = append(snap, placed{
				coord: v.Coord(), isCell: true,
				cell: cellState{kind: v.Kind(), revealed: v.Revealed(), showInfo: v.ShowInfo()},
			})
		case *hexentity.Column:
			snap = append(snap, placed{
				coord: v.Coord(), isCell: false,
				column: columnState{angle: v.Angle(), showInfo: v.ShowInfo()},
			})
		}
	}
	return snap
}

func (ed *Editor) restoreSnapshot(snap snapshot) {
	ed.grid.Clear()
	for _, p := range snap {
		if p.isCell {
			c := hexentity.NewCell(p.coord, ed.grid, p.cell.kind)
			c.SetRevealed(p.cell.revealed)
			c.SetShowInfo(p.cell.showInfo)
			ed.grid.Place(c, p.coord)
		} else {
			col := hexentity.NewColumn(p.coord, ed.grid, p.column.angle)
			col.SetShowInfo(p.column.showInfo)
			ed.grid.Place(col, p.coord)
		}
	}
	hexentity.FullUpdate(ed.grid)
}

// pushHistory records the grid's current state before a mutation and
// clears the redo stack (a fresh edit invalidates any undone future).
func (ed *Editor) pushHistory() {
	entry := historyEntry{id: uuid.New(), snap: ed.takeSnapshot()}
	ed.undoStack = append(ed.undoStack, entry)
	if len(ed.undoStack) > ed.historyLimit {
		ed.undoStack = ed.undoStack[len(ed.undoStack)-ed.historyLimit:]
	}
	ed.redoStack = nil
	hexlog.Debug("hexeditor: snapshot %s pushed (undo depth %d)", entry.id, len(ed.undoStack))
}

// PlaceCell places a new cell of kind at coord, refusing both an
// exact-coordinate conflict and a four-neighbor screen-space overlap
// (spec (s)4.1).
func (ed *Editor) PlaceCell(coord hexcoord.Coordinate, kind hexentity.Kind) error {
	c := hexentity.NewCell(coord, ed.grid, kind)
	if err := ed.grid.CheckNoConflict(c, coord); err != nil {
		return err
	}
	if overlap := ed.grid.Overlapping(c); len(overlap) > 0 {
		return fmt.Errorf("%w: placing at (%d,%d) would overlap an adjacent entity", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	ed.pushHistory()
	ed.grid.Place(c, coord)
	hexentity.FullUpdate(ed.grid)
	return nil
}

// PlaceColumn places a new column marker at coord.
func (ed *Editor) PlaceColumn(coord hexcoord.Coordinate, angle hexcoord.ColumnAngle) error {
	col := hexentity.NewColumn(coord, ed.grid, angle)
	if err := ed.grid.CheckNoConflict(col, coord); err != nil {
		return err
	}
	if overlap := ed.grid.Overlapping(col); len(overlap) > 0 {
		return fmt.Errorf("%w: placing at (%d,%d) would overlap an adjacent entity", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	ed.pushHistory()
	ed.grid.Place(col, coord)
	hexentity.FullUpdate(ed.grid)
	return nil
}

// Remove deletes whatever occupies coord, if anything.
func (ed *Editor) Remove(coord hexcoord.Coordinate) {
	if _, ok := ed.grid.At(coord); !ok {
		return
	}
	ed.pushHistory()
	ed.grid.Remove(coord)
	delete(ed.selection, coord)
	hexentity.FullUpdate(ed.grid)
}

// ToggleKind flips a cell's truth between Full and Empty.
func (ed *Editor) ToggleKind(coord hexcoord.Coordinate) error {
	e, ok := ed.grid.At(coord)
	if !ok {
		return fmt.Errorf("%w: no cell at (%d,%d)", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	c, isCell := e.(*hexentity.Cell)
	if !isCell {
		return fmt.Errorf("%w: entity at (%d,%d) is not a cell", hexerr.ErrGridConflict, coord.X, coord.Y)
	}
	ed.pushHistory()
	if c.Kind() == hexentity.KindFull {
		c.SetKind(hexentity.KindEmpty)
	} else {
		c.SetKind(hexentity.KindFull)
	}
	hexentity.FullUpdate(ed.grid)
	return nil
}

// Select adds coord to the selection.
func (ed *Editor) Select(coord hexcoord.Coordinate) { ed.selection[coord] = true }

// Deselect removes coord from the selection.
func (ed *Editor) Deselect(coord hexcoord.Coordinate) { delete(ed.selection, coord) }

// ClearSelection empties the selection.
func (ed *Editor) ClearSelection() { ed.selection = make(map[hexcoord.Coordinate]bool) }

// Selection returns the currently selected coordinates in grid order.
func (ed *Editor) Selection() []hexcoord.Coordinate {
	coords := make([]hexcoord.Coordinate, 0, len(ed.selection))
	for c := range ed.selection {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

// MoveSelection translates every selected entity by (dx, dy). The move is
// refused (hexerr.ErrGridConflict) if any destination coordinate is
// occupied by an entity that is not itself part of the selection, per
// spec (s)4.6: "no collisions" with content outside the moved group.
func (ed *Editor) MoveSelection(dx, dy int) error {
	coords := ed.Selection()
	if len(coords) == 0 {
		return nil
	}
	for _, c := range coords {
		dest := c.Add(dx, dy)
		if ed.selection[dest] {
			continue
		}
		if _, occupied := ed.grid.At(dest); occupied {
			return fmt.Errorf("%w: moving selection would collide at (%d,%d)", hexerr.ErrGridConflict, dest.X, dest.Y)
		}
	}

	ed.pushHistory()
	moved := make(map[hexcoord.Coordinate]hexgrid.Entity, len(coords))
	for _, c := range coords {
		e, _ := ed.grid.At(c)
		moved[c] = e
		ed.grid.Remove(c)
	}
	newSelection := make(map[hexcoord.Coordinate]bool, len(coords))
	for c, e := range moved {
		dest := c.Add(dx, dy)
		switch v := e.(type) {
		case *hexentity.Cell:
			nc := hexentity.NewCell(dest, ed.grid, v.Kind())
			nc.SetRevealed(v.Revealed())
			nc.SetShowInfo(v.ShowInfo())
			ed.grid.Place(nc, dest)
		case *hexentity.Column:
			ncol := hexentity.NewColumn(dest, ed.grid, v.Angle())
			ncol.SetShowInfo(v.ShowInfo())
			ed.grid.Place(ncol, dest)
		}
		newSelection[dest] = true
	}
	ed.selection = newSelection
	hexentity.FullUpdate(ed.grid)
	return nil
}

// Undo restores the grid to its state before the last edit. Returns false
// if there is nothing to undo.
func (ed *Editor) Undo() bool {
	if len(ed.undoStack) == 0 {
		return false
	}
	entry := ed.undoStack[len(ed.undoStack)-1]
	ed.undoStack = ed.undoStack[:len(ed.undoStack)-1]
	ed.redoStack = append(ed.redoStack, historyEntry{id: uuid.New(), snap: ed.takeSnapshot()})
	ed.restoreSnapshot(entry.snap)
	hexlog.Debug("hexeditor: undo to snapshot %s", entry.id)
	return true
}

// Redo re-applies the most recently undone edit. Returns false if there
// is nothing to redo.
func (ed *Editor) Redo() bool {
	if len(ed.redoStack) == 0 {
		return false
	}
	entry := ed.redoStack[len(ed.redoStack)-1]
	ed.redoStack = ed.redoStack[:len(ed.redoStack)-1]
	ed.undoStack = append(ed.undoStack, historyEntry{id: uuid.New(), snap: ed.takeSnapshot()})
	ed.restoreSnapshot(entry.snap)
	hexlog.Debug("hexeditor: redo to snapshot %s", entry.id)
	return true
}

func sortCoords(coords []hexcoord.Coordinate) {
	for i := 1; i < len(coords); i++ {
		for j := i; j > 0 && less(coords[j], coords[j-1]); j-- {
			coords[j], coords[j-1] = coords[j-1], coords[j]
		}
	}
}

func less(a, b hexcoord.Coordinate) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
