// Package simple implements the arithmetic elimination solver (C5): a
// fixed-point worklist over constraint sources (revealed cells with a
// value, and every column) that proves forced Full/Empty conclusions
// without resorting to the ILP backend.
package simple

import (
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

// Conclusion is one proved (cell, kind) deduction: the solver asserts the
// cell's true kind must be Kind, even though it has not been revealed.
type Conclusion struct {
	Cell *hexentity.Cell
	Kind hexentity.Kind
}

// source is a single constraint: a fixed member list and the true count of
// Full members among it (the hint value, already known once the source is
// a revealed cell or a column).
type source struct {
	members []*hexentity.Cell
	value   int
}

// Solve runs the fixed-point pass described by spec (s)4.4 and returns
// every forced conclusion it can prove, in discovery order. It never
// mutates the grid; callers decide whether/how to apply a conclusion
// (typically by revealing the cell).
func Solve(g *hexgrid.Grid) []Conclusion {
	sources := collectSources(g)

	known := make(map[*hexentity.Cell]hexentity.Kind)
	for _, e := range g.IterCells() {
		c := e.(*hexentity.Cell)
		switch c.Display() {
		case hexentity.DisplayFull:
			known[c] = hexentity.KindFull
		case hexentity.DisplayEmpty:
			known[c] = hexentity.KindEmpty
		}
	}

	refs := make(map[*hexentity.Cell][]int)
	for i, s := range sources {
		for _, m := range s.members {
			refs[m] = append(refs[m], i)
		}
	}

	queued := make([]bool, len(sources))
	queue := make([]int, len(sources))
	for i := range sources {
		queue[i] = i
		queued[i] = true
	}

	var conclusions []Conclusion
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		queued[i] = false

		s := sources[i]
		f, e := 0, 0
		var unknown []*hexentity.Cell
		for _, m := range s.members {
			if k, ok := known[m]; ok {
				if k == hexentity.KindFull {
					f++
				} else {
					e++
				}
				continue
			}
			unknown = append(unknown, m)
		}
		if len(unknown) == 0 {
			continue
		}

		m := len(s.members)
		k := s.value

		var forcedKind hexentity.Kind
		switch {
		case k-f == 0:
			forcedKind = hexentity.KindEmpty
		case (m-k)-e == 0:
			forcedKind = hexentity.KindFull
		default:
			continue
		}

		for _, u := range unknown {
			if _, already := known[u]; already {
				continue
			}
			known[u] = forcedKind
			conclusions = append(conclusions, Conclusion{Cell: u, Kind: forcedKind})
			for _, ri := range refs[u] {
				if !queued[ri] {
					queued[ri] = true
					queue = append(queue, ri)
				}
			}
		}
	}
	return conclusions
}

// collectSources gathers every constraint source in spec (s)4.4's
// deterministic order: revealed cells exposing a value first (grid order),
// then every column (grid order).
func collectSources(g *hexgrid.Grid) []source {
	var sources []source
	for _, e := range g.IterCells() {
		c := e.(*hexentity.Cell)
		if !c.Revealed() {
			continue
		}
		v, ok := c.Value()
		if !ok {
			continue
		}
		sources = append(sources, source{members: c.Members(), value: v})
	}
	for _, e := range g.IterColumns() {
		col := e.(*hexentity.Column)
		sources = append(sources, source{members: col.Members(), value: col.Value()})
	}
	return sources
}
