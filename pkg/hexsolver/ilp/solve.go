// Package ilp implements the two-phase equivalence-class ILP solver (C6):
// Stage 1 quotients unknown cells into equivalence classes, Stage 2
// encodes the puzzle's constraints as a small integer program over class
// variables, and Stage 3 proves forced Full/Empty conclusions.
//
// Stage 3 verifies each class individually (minimize x_i to prove Full,
// maximize x_i to prove Empty) rather than testing every T/F candidate
// with one shared objective. A single combined objective can be uniquely
// optimal while still leaving an individual variable unforced — two
// candidates that can each reach their own bound, but never both at once,
// score lower as a pair than either scores alone, so the shared-objective
// optimum silently keeps both in its apparent "stayed saturated" set. The
// per-class verification below costs the same O(|unknowns|) worst-case
// solver calls spec (s)4.5 allows and is sound by construction: a class
// only survives into the result if every feasible assignment agrees.
package ilp

import (
	"fmt"

	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexgrid"
	"github.com/hexsolve/hexsolve/pkg/hexsolver/ilp/backend"
)

// Conclusion is one proved (cell, kind) deduction.
type Conclusion struct {
	Cell *hexentity.Cell
	Kind hexentity.Kind
}

// Solve runs Stages 1-3 against g, using remaining (the count of Full
// cells not yet displayed, spec (s)6's remaining(scene)) as the global
// constraint's right-hand side. It returns hexerr.ErrSolverInfeasible if
// the underlying backend reports no feasible assignment exists.
func Solve(g *hexgrid.Grid, remaining int, be backend.Backend) ([]Conclusion, error) {
	if be == nil {
		be = backend.BranchAndBound{}
	}
	sources := collectSources(g)
	classes := buildQuotient(g, sources)
	if len(classes) == 0 {
		return nil, nil
	}
	p := buildProblem(sources, classes, remaining)

	zero := make([]int, p.NumVars)
	assign, _, ok, err := be.Maximize(p, zero)
	if err != nil {
		return nil, fmt.Errorf("ilp: initial feasibility search: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no assignment satisfies the declared remaining count", hexerr.ErrSolverInfeasible)
	}

	// Candidate sets from the cheap any-feasible solve: classes that
	// happened to land at their bound. Only a subset of these will
	// survive individual verification below.
	var candidatesT, candidatesF []int
	for i := range classes {
		switch assign[i] {
		case p.Upper[i]:
			candidatesT = append(candidatesT, i)
		case 0:
			candidatesF = append(candidatesF, i)
		}
	}

	var conclusions []Conclusion
	for _, i := range candidatesT {
		// Forced full requires the class's MINIMUM reachable value to
		// already be its upper bound: maximize -x_i to find that minimum.
		objective := make([]int, p.NumVars)
		objective[i] = -1
		_, value, ok, err := be.Maximize(p, objective)
		if err != nil {
			return nil, fmt.Errorf("ilp: proof search for class %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: proof search lost feasibility", hexerr.ErrSolverInfeasible)
		}
		minValue := -value
		if minValue != p.Upper[i] {
			continue
		}
		for _, m := range classes[i].members {
			conclusions = append(conclusions, Conclusion{Cell: m, Kind: hexentity.KindFull})
		}
	}
	for _, i := range candidatesF {
		objective := make([]int, p.NumVars)
		objective[i] = 1
		_, value, ok, err := be.Maximize(p, objective)
		if err != nil {
			return nil, fmt.Errorf("ilp: proof search for class %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: proof search lost feasibility", hexerr.ErrSolverInfeasible)
		}
		if value != 0 {
			continue
		}
		for _, m := range classes[i].members {
			conclusions = append(conclusions, Conclusion{Cell: m, Kind: hexentity.KindEmpty})
		}
	}
	return conclusions, nil
}
