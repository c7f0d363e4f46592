// Package resolution implements binary resolution: deriving a resolvent
// from two clauses that share a complementary literal. It is used directly
// as a contract-level saturation engine (spec §4.4) and as a building block
// for the DP engine's best-scored resolution step (spec §4.3).
package resolution

import (
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/kernel"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

// complementaryLiteral returns the first literal l such that l is in c1 and
// -l is in c2, and true if one was found.
func complementaryLiteral(c1, c2 kernel.Clause) (sat.Literal, bool) {
	for _, l := range c1 {
		for _, m := range c2 {
			if m == l.Neg() {
				return l, true
			}
		}
	}
	return 0, false
}

// Resolve derives the resolvent of c1 and c2 on their first complementary
// literal pair (l, -l): (c1 \ {l}) U (c2 \ {-l}), deduplicated. It returns
// (nil, false, false) if c1 and c2 share no complementary literal, and
// (nil, true, true) -- the tautology flag set -- if the resolvent would
// contain both x and -x for some variable (discarded rather than added).
func Resolve(c1, c2 kernel.Clause) (resolvent kernel.Clause, isTautology bool, ok bool) {
	l, found := complementaryLiteral(c1, c2)
	if !found {
		return nil, false, false
	}

	seen := make(map[sat.Literal]bool, len(c1)+len(c2))
	out := make(kernel.Clause, 0, len(c1)+len(c2)-2)
	for _, x := range c1 {
		if x == l {
			continue
		}
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for _, x := range c2 {
		if x == l.Neg() {
			continue
		}
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}

	for _, x := range out {
		if seen[x.Neg()] {
			return nil, true, true
		}
	}

	return out, false, true
}

// sameClause reports whether a and b contain exactly the same set of
// literals, irrespective of order (a "permutation of an existing clause").
func sameClause(a, b kernel.Clause) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[sat.Literal]bool, len(a))
	for _, l := range a {
		set[l] = true
	}
	for _, l := range b {
		if !set[l] {
			return false
		}
	}
	return true
}

func containsClause(clauses []kernel.Clause, c kernel.Clause) bool {
	for _, existing := range clauses {
		if sameClause(existing, c) {
			return true
		}
	}
	return false
}

// BestStep scans every pair of clauses that share a complementary literal,
// scores each candidate pair by the combined clause size (lower preferred),
// and returns the resolvent of the lowest-scored pair that is neither a
// tautology nor a duplicate of an existing clause. It returns ok=false when
// no such candidate exists -- the clause set is closed under resolution.
func BestStep(clauses []kernel.Clause) (kernel.Clause, bool) {
	bestScore := -1
	var best kernel.Clause
	found := false

	for i := 0; i < len(clauses); i++ {
		for j := i + 1; j < len(clauses); j++ {
			resolvent, isTautology, ok := Resolve(clauses[i], clauses[j])
			if !ok || isTautology {
				continue
			}
			if containsClause(clauses, resolvent) {
				continue
			}

			score := len(clauses[i]) + len(clauses[j])
			if !found || score < bestScore {
				bestScore = score
				best = resolvent
				found = true
			}
		}
	}

	return best, found
}

// Saturate implements the contract-only resolution backend (spec §4.4): it
// repeatedly adds non-tautological, non-duplicate resolvents between every
// pair of clauses until either the empty clause is derived (unsatisfiable)
// or a fixed point is reached without deriving it (satisfiable). It returns
// no assignment, only the verdict.
func Saturate(numVars int, rawClauses [][]sat.Literal) bool {
	f := kernel.NewFormula(numVars, rawClauses)
	clauses := f.ClausesView()

	for {
		resolvent, ok := BestStep(clauses)
		if !ok {
			return true // closure reached without the empty clause
		}
		if len(resolvent) == 0 {
			return false // empty clause derived
		}
		clauses = append(clauses, resolvent)
	}
}
