// Package dp implements the Davis-Putnam variable-elimination procedure:
// alternating kernel preprocessing with a single best-scored binary
// resolution step until a fixed point or a contradiction is reached.
package dp

import (
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/kernel"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/resolution"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

// Solve returns (true, assignment) if the formula is satisfiable,
// (false, nil) otherwise.
func Solve(numVars int, rawClauses [][]sat.Literal) (bool, *kernel.Assignment) {
	f := kernel.NewFormula(numVars, rawClauses)
	a := kernel.NewAssignment(numVars)

	for {
		if !f.UnitPropagation(a) {
			return false, nil
		}
		if len(f.Clauses) == 0 {
			return true, finishUnconstrained(f, a)
		}

		before := len(f.Clauses)
		f.EliminatePureLiterals(a)
		if f.HasEmptyClause() {
			return false, nil
		}
		if len(f.Clauses) == 0 {
			return true, finishUnconstrained(f, a)
		}

		if len(f.Clauses) != before {
			continue // clause count changed, re-run propagation/elimination first
		}

		resolvent, ok := resolution.BestStep(f.Clauses)
		if !ok {
			// The clause set is closed under resolution without producing
			// the empty clause: declare SAT.
			return true, finishUnconstrained(f, a)
		}
		if len(resolvent) == 0 {
			return false, nil
		}
		f.Clauses = append(f.Clauses, resolvent)
	}
}

// finishUnconstrained assigns an arbitrary (but consistent) polarity to
// every variable the search left unconstrained, harvested from the first
// literal of each remaining clause, per spec §4.3.
func finishUnconstrained(f *kernel.Formula, a *kernel.Assignment) *kernel.Assignment {
	for _, c := range f.Clauses {
		if len(c) == 0 {
			continue
		}
		l := c[0]
		if !a.IsAssigned(l.Var()) {
			a.AddLiteralTrue(l)
		}
	}
	for v := 1; v <= f.NumVars; v++ {
		if !a.IsAssigned(v) {
			a.AddLiteralTrue(sat.NewLiteral(v, true))
		}
	}
	return a
}
