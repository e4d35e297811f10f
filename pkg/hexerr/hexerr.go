// Package hexerr defines the sentinel error taxonomy of the puzzle core
// (spec (c)7: ParseError, TooWide/TooTall, OverlapsUI, GridConflict,
// SolverInfeasible, ContradictoryHint). Fatal kinds are returned wrapped
// with fmt.Errorf("...: %w", Sentinel); warnings are returned as a second
// return value, never as an error.
package hexerr

import "errors"

// Sentinel error kinds. Wrap these with fmt.Errorf("%w: detail", Sentinel)
// so callers can still errors.Is against the kind.
var (
	// ErrParse marks a malformed header or row in the text codec. Fatal:
	// abandon the load.
	ErrParse = errors.New("hexsolve: parse error")

	// ErrGridConflict marks an illegal placement requested of the grid
	// model. The operation is rejected and state is left unchanged.
	ErrGridConflict = errors.New("hexsolve: grid conflict")

	// ErrSolverInfeasible marks that the MILP backend reported no
	// solution exists. This implies the level's declared remaining count
	// is inconsistent with the visible state.
	ErrSolverInfeasible = errors.New("hexsolve: solver infeasible")

	// ErrContradictoryHint marks that a proved forced value disagrees
	// with the cell's declared truth. Fatal assertion: indicates a
	// corrupted level.
	ErrContradictoryHint = errors.New("hexsolve: contradictory hint")
)

// Warning is a non-fatal condition returned alongside a nil error.
type Warning int

const (
	// NoWarning indicates nothing of note.
	NoWarning Warning = iota
	// TooWide indicates placed content did not fit within the frame width.
	TooWide
	// TooTall indicates placed content did not fit within the frame height.
	TooTall
	// OverlapsUI indicates the emitted layout overlaps the reserved UI mask.
	OverlapsUI
)

func (w Warning) String() string {
	switch w {
	case TooWide:
		return "TooWide"
	case TooTall:
		return "TooTall"
	case OverlapsUI:
		return "OverlapsUI"
	default:
		return "NoWarning"
	}
}
