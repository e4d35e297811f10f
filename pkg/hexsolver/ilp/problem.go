package ilp

import (
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexsolver/ilp/backend"
)

// term resolves a member cell to either a known constant (0 or 1) or a
// reference to the class variable representing it.
type term struct {
	isVar    bool
	classIdx int
	constant int
}

func resolveTerm(idx map[*hexentity.Cell]int, m *hexentity.Cell) term {
	if m.Display() != hexentity.DisplayUnknown {
		if m.Display() == hexentity.DisplayFull {
			return term{constant: 1}
		}
		return term{constant: 0}
	}
	return term{isVar: true, classIdx: idx[m]}
}

// buildProblem implements spec (s)4.5 Stage 2: one variable per
// equivalence class, the global remaining-count constraint, and per-source
// sum/together/separated constraints.
func buildProblem(sources []constraintSource, classes []class, remaining int) backend.Problem {
	idx := classIndex(classes)
	n := len(classes)

	upper := make([]int, n)
	for i, cls := range classes {
		upper[i] = len(cls.members)
	}

	p := backend.Problem{NumVars: n, Upper: upper}

	// Global: sum of all classes == remaining.
	global := backend.Constraint{Coeffs: make([]int, n), Op: backend.EQ, RHS: remaining}
	for i := range classes {
		global.Coeffs[i] = 1
	}
	p.Constraints = append(p.Constraints, global)

	for _, s := range sources {
		p.Constraints = append(p.Constraints, sumConstraint(idx, n, s))
		switch s.kind {
		case sourceColumn:
			p.Constraints = append(p.Constraints, columnTogetherConstraints(idx, n, s)...)
		case sourceCell:
			p.Constraints = append(p.Constraints, cellTogetherConstraints(idx, n, s)...)
		}
	}
	return p
}

// sumConstraint is "sum of members == value(C)", rewritten in terms of
// class variables: known members fold into the RHS, unknown members
// contribute their class's variable with coefficient 1.
func sumConstraint(idx map[*hexentity.Cell]int, n int, s constraintSource) backend.Constraint {
	coeffs := make([]int, n)
	rhs := s.value
	for _, m := range s.members {
		t := resolveTerm(idx, m)
		if t.isVar {
			coeffs[t.classIdx] = 1
		} else {
			rhs -= t.constant
		}
	}
	return backend.Constraint{Coeffs: coeffs, Op: backend.EQ, RHS: rhs}
}

// columnTogetherConstraints adds the span/window constraints from spec
// (s)4.5's column rule. Every member referenced here belongs to a
// singleton class (Stage 1's together exception), so each term is either
// a known constant or a single 0/1 class variable bound to 1.
func columnTogetherConstraints(idx map[*hexentity.Cell]int, n int, s constraintSource) []backend.Constraint {
	m := len(s.members)
	k := s.value
	var out []backend.Constraint

	switch s.together {
	case hexentity.TogetherTrue:
		for span := k; span <= m-1; span++ {
			for start := 0; start+span < m; start++ {
				coeffs := make([]int, n)
				rhs := 1
				addTerm(idx, coeffs, &rhs, s.members[start], 1)
				addTerm(idx, coeffs, &rhs, s.members[start+span], 1)
				out = append(out, backend.Constraint{Coeffs: coeffs, Op: backend.LE, RHS: rhs})
			}
		}
	case hexentity.TogetherFalse:
		if k <= 0 {
			return out
		}
		for start := 0; start+k <= m; start++ {
			coeffs := make([]int, n)
			rhs := k - 1
			for i := start; i < start+k; i++ {
				addTerm(idx, coeffs, &rhs, s.members[i], 1)
			}
			out = append(out, backend.Constraint{Coeffs: coeffs, Op: backend.LE, RHS: rhs})
		}
	}
	return out
}

// cellTogetherConstraints adds the circular "no lonely cell / no lonely
// gap" constraints (together=true, 2<=value<=4) or the adjacency-chain
// window constraints (together=false) from spec (s)4.5's revealed-cell
// rule.
func cellTogetherConstraints(idx map[*hexentity.Cell]int, n int, s constraintSource) []backend.Constraint {
	members := s.members
	count := len(members)
	var out []backend.Constraint

	if s.together == hexentity.TogetherTrue && s.value >= 2 && s.value <= 4 && count > 0 {
		for i := 0; i < count; i++ {
			prev := (i - 1 + count) % count
			next := (i + 1) % count

			coeffs := make([]int, n)
			rhs := 0
			if members[prev].IsNeighbor(members[i]) {
				addTerm(idx, coeffs, &rhs, members[prev], -1)
			}
			addTerm(idx, coeffs, &rhs, members[i], 1)
			if members[next].IsNeighbor(members[i]) {
				addTerm(idx, coeffs, &rhs, members[next], -1)
			}
			le := backend.Constraint{Coeffs: append([]int(nil), coeffs...), Op: backend.LE, RHS: rhs}
			ge := backend.Constraint{Coeffs: append([]int(nil), coeffs...), Op: backend.GE, RHS: rhs - 1}
			out = append(out, le, ge)
		}
	} else if s.together == hexentity.TogetherFalse && s.value > 0 && s.value <= count {
		k := s.value
		for start := 0; start+k <= count; start++ {
			if !isChain(members[start : start+k]) {
				continue
			}
			coeffs := make([]int, n)
			rhs := k - 1
			for i := start; i < start+k; i++ {
				addTerm(idx, coeffs, &rhs, members[i], 1)
			}
			out = append(out, backend.Constraint{Coeffs: coeffs, Op: backend.LE, RHS: rhs})
		}
	}
	return out
}

// addTerm adds coeff*member to a constraint being built: if member is a
// known constant it is folded into rhs (moved to the other side, hence
// subtracted), otherwise it sets the coefficient on its class variable.
func addTerm(idx map[*hexentity.Cell]int, coeffs []int, rhs *int, m *hexentity.Cell, coeff int) {
	t := resolveTerm(idx, m)
	if t.isVar {
		coeffs[t.classIdx] += coeff
	} else {
		*rhs -= coeff * t.constant
	}
}

// isChain reports whether consecutive members form an unbroken hex
// adjacency chain.
func isChain(members []*hexentity.Cell) bool {
	for i := 0; i+1 < len(members); i++ {
		if !members[i].IsNeighbor(members[i+1]) {
			return false
		}
	}
	return true
}
