// Package verify implements the solver-agnostic check from spec §4.6: given
// the original clause list and a flat literal assignment, confirm the
// assignment is consistent and satisfies every clause.
package verify

import "github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"

// Verify reports whether assignment is a valid model of clauses: no
// variable is assigned both polarities, and every clause has at least one
// literal present in the assignment. On failure it also returns a short
// human-readable reason.
func Verify(clauses [][]sat.Literal, assignment []sat.Literal) (bool, string) {
	seen := make(map[sat.Literal]bool, len(assignment))
	for _, l := range assignment {
		if seen[l.Neg()] {
			return false, "assignment sets both polarities of a variable"
		}
		seen[l] = true
	}

	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			if seen[l] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, "a clause is not satisfied by the assignment"
		}
	}

	return true, ""
}
