package hexentity

import "github.com/hexsolve/hexsolve/pkg/hexgrid"

// FullUpdate invalidates and eagerly recomputes every Cell and Column's
// derived members/value/together in the grid. Callers must invoke this
// after any batch of mutations (placement, kind changes, show_info
// changes) and before the next solver call, per spec (s)4.2.
func FullUpdate(g *hexgrid.Grid) {
	all := g.IterAll()
	for _, e := range all {
		switch v := e.(type) {
		case *Cell:
			v.invalidate()
		case *Column:
			v.invalidate()
		}
	}
	for _, e := range all {
		switch v := e.(type) {
		case *Cell:
			v.recompute()
		case *Column:
			v.recompute()
		}
	}
}
