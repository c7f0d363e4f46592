// Package dpll implements the Davis-Putnam-Logemann-Loveland recursive
// splitting procedure on top of the shared formula kernel.
package dpll

import (
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/kernel"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

// Solve returns (true, assignment) if f is satisfiable, (false, nil)
// otherwise. f and a are consumed: callers that need the original formula
// should pass a Clone.
func Solve(f *kernel.Formula, a *kernel.Assignment) (bool, *kernel.Assignment) {
	if !preprocess(f, a) {
		return false, nil
	}
	if len(f.Clauses) == 0 {
		return true, a
	}

	l, ok := chooseLiteral(f, a)
	if !ok {
		// No unassigned literal remains in any clause, yet clauses are
		// non-empty: every variable involved is already decided, which
		// preprocess should have reduced to len(f.Clauses) == 0. Treat
		// conservatively as failure (internal invariant would catch this
		// in the CDCL engine; DPLL's kernel loop never leaves this state).
		return false, nil
	}

	snapF, snapA := f.Clone(), a.Clone()

	snapF.SimplifyUnder(l, snapA)
	if snapF.HasEmptyClause() {
		// fall through to the other polarity
	} else if ok, res := Solve(snapF, snapA); ok {
		return true, res
	}

	f.SimplifyUnder(l.Neg(), a)
	if f.HasEmptyClause() {
		return false, nil
	}
	return Solve(f, a)
}

// preprocess runs unit propagation and pure-literal elimination to a fixed
// point. It returns false if a contradiction is detected.
func preprocess(f *kernel.Formula, a *kernel.Assignment) bool {
	for {
		before := len(a.Trail)
		if !f.UnitPropagation(a) {
			return false
		}
		f.EliminatePureLiterals(a)
		if len(a.Trail) == before {
			break
		}
	}
	return !f.HasEmptyClause()
}

// chooseLiteral implements the MOM-like literal choice from spec §4.2:
// among unassigned literals across remaining clauses, score each variable by
// f(+v) + f(-v) and branch on the highest-scoring variable using the
// polarity with the higher individual frequency. Ties are broken by order of
// first appearance.
func chooseLiteral(f *kernel.Formula, a *kernel.Assignment) (sat.Literal, bool) {
	posFreq := make(map[int]int)
	negFreq := make(map[int]int)
	var order []int
	seen := make(map[int]bool)

	for _, c := range f.Clauses {
		for _, l := range c {
			v := l.Var()
			if !seen[v] {
				seen[v] = true
				order = append(order, v)
			}
			if l.Positive() {
				posFreq[v]++
			} else {
				negFreq[v]++
			}
		}
	}

	bestVar := -1
	bestScore := -1
	for _, v := range order {
		score := posFreq[v] + negFreq[v]
		if score > bestScore {
			bestScore = score
			bestVar = v
		}
	}
	if bestVar < 0 {
		return 0, false
	}

	positive := posFreq[bestVar] >= negFreq[bestVar]
	return sat.NewLiteral(bestVar, positive), true
}
