package ilp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
)

type sourceKind int

const (
	sourceCell sourceKind = iota
	sourceColumn
)

// constraintSource is one active constraint: a revealed cell exposing a
// value, or any column. members is in the entity's stored order, which
// the positional together/separated constraints depend on.
type constraintSource struct {
	kind     sourceKind
	members  []*hexentity.Cell
	value    int
	together hexentity.Together
}

// collectSources gathers every constraint source in deterministic order:
// revealed cells with a value (grid order), then every column (grid order).
func collectSources(g *hexgrid.Grid) []constraintSource {
	var sources []constraintSource
	for _, e := range g.IterCells() {
		c := e.(*hexentity.Cell)
		if !c.Revealed() {
			continue
		}
		v, ok := c.Value()
		if !ok {
			continue
		}
		sources = append(sources, constraintSource{
			kind: sourceCell, members: c.Members(), value: v, together: c.TogetherHint(),
		})
	}
	for _, e := range g.IterColumns() {
		col := e.(*hexentity.Column)
		together := hexentity.TogetherNone
		if col.ShowInfo() {
			together = col.TogetherHint()
		}
		sources = append(sources, constraintSource{
			kind: sourceColumn, members: col.Members(), value: col.Value(), together: together,
		})
	}
	return sources
}

// class is one equivalence class of Stage 1: a representative cell plus
// the full set of cells folded into it.
type class struct {
	representative *hexentity.Cell
	members        []*hexentity.Cell
}

// buildQuotient implements spec (s)4.5 Stage 1. Two unknown cells are
// equivalent iff the set of constraint sources referencing them is equal;
// any cell referenced by a source with a definite together flag is
// exempted into its own singleton class, since position (not just count)
// matters for it.
func buildQuotient(g *hexgrid.Grid, sources []constraintSource) []class {
	var unknowns []*hexentity.Cell
	for _, e := range g.IterCells() {
		c := e.(*hexentity.Cell)
		if c.Display() == hexentity.DisplayUnknown {
			unknowns = append(unknowns, c)
		}
	}

	refs := make(map[*hexentity.Cell][]int)
	singleton := make(map[*hexentity.Cell]bool)
	for i, s := range sources {
		for _, m := range s.members {
			if m.Display() != hexentity.DisplayUnknown {
				continue
			}
			refs[m] = append(refs[m], i)
			if s.together != hexentity.TogetherNone {
				singleton[m] = true
			}
		}
	}

	var classes []class
	groupOrder := make([]string, 0, len(unknowns))
	groupMembers := make(map[string][]*hexentity.Cell, len(unknowns))
	for _, u := range unknowns {
		if singleton[u] {
			classes = append(classes, class{representative: u, members: []*hexentity.Cell{u}})
			continue
		}
		key := signature(refs[u])
		if _, ok := groupMembers[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groupMembers[key] = append(groupMembers[key], u)
	}
	for _, key := range groupOrder {
		members := groupMembers[key]
		classes = append(classes, class{representative: members[0], members: members})
	}
	return classes
}

func signature(idxs []int) string {
	sorted := append([]int(nil), idxs...)
	sort.Ints(sorted)
	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

// classIndex returns, for every unknown cell, the index into classes of
// the class it was folded into.
func classIndex(classes []class) map[*hexentity.Cell]int {
	idx := make(map[*hexentity.Cell]int)
	for i, cls := range classes {
		for _, m := range cls.members {
			idx[m] = i
		}
	}
	return idx
}
