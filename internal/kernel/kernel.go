// Package kernel implements the preprocessing machinery shared by the DPLL
// and DP backends: unit propagation, pure-literal elimination, and
// clause simplification under a literal assignment. The CDCL backend does
// not use this package — it maintains its own incremental two-watched-literal
// state (see internal/cdcl) for performance, but the *semantics* of unit
// propagation here and there agree.
package kernel

import "github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"

// Clause is an ordered, duplicate-free, non-tautological set of literals.
type Clause []sat.Literal

func (c Clause) contains(l sat.Literal) bool {
	for _, x := range c {
		if x == l {
			return true
		}
	}
	return false
}

func (c Clause) clone() Clause {
	out := make(Clause, len(c))
	copy(out, c)
	return out
}

// normalizeClause removes duplicate literals and returns (clause, true) or
// (nil, false) if the clause is a tautology (contains l and -l) and should be
// dropped.
func normalizeClause(lits []sat.Literal) (Clause, bool) {
	seen := make(map[sat.Literal]bool, len(lits))
	out := make(Clause, 0, len(lits))
	for _, l := range lits {
		if seen[l.Neg()] {
			return nil, false
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, true
}

// Formula is a mutable CNF clause store. It is the unit of work the DPLL and
// DP engines snapshot and restore across search branches.
type Formula struct {
	NumVars int
	Clauses []Clause
}

// NewFormula builds a Formula from raw clauses, dropping tautologies and
// duplicate literals within each clause.
func NewFormula(numVars int, rawClauses [][]sat.Literal) *Formula {
	f := &Formula{NumVars: numVars}
	for _, rc := range rawClauses {
		if c, ok := normalizeClause(rc); ok {
			f.Clauses = append(f.Clauses, c)
		}
	}
	return f
}

// Clone returns a deep copy of f so that a failed search branch can restore
// the exact preimage state without the two branches aliasing each other's
// slices. This is the "scoped snapshot/restore" value held on the call stack,
// per the design notes on re-architecting DPLL's save/restore.
func (f *Formula) Clone() *Formula {
	out := &Formula{
		NumVars: f.NumVars,
		Clauses: make([]Clause, len(f.Clauses)),
	}
	for i, c := range f.Clauses {
		out.Clauses[i] = c.clone()
	}
	return out
}

// ClausesView returns a read-only view of the current clause set.
func (f *Formula) ClausesView() []Clause {
	return f.Clauses
}

// HasEmptyClause reports whether some clause in the formula has become
// empty, which is the kernel's conflict signal.
func (f *Formula) HasEmptyClause() bool {
	for _, c := range f.Clauses {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

// Assignment is the chronological record of literals the kernel has set
// true, independent of any particular Formula snapshot.
type Assignment struct {
	Trail    []sat.Literal
	assigned []bool
	value    []bool
}

// NewAssignment returns an empty assignment sized for numVars variables
// (1-based; index 0 is unused).
func NewAssignment(numVars int) *Assignment {
	return &Assignment{
		assigned: make([]bool, numVars+1),
		value:    make([]bool, numVars+1),
	}
}

// Clone returns a deep copy so a DPLL branch can restore the assignment
// exactly as it was before the branch started.
func (a *Assignment) Clone() *Assignment {
	out := &Assignment{
		Trail:    make([]sat.Literal, len(a.Trail)),
		assigned: make([]bool, len(a.assigned)),
		value:    make([]bool, len(a.value)),
	}
	copy(out.Trail, a.Trail)
	copy(out.assigned, a.assigned)
	copy(out.value, a.value)
	return out
}

// IsAssigned reports whether variable v already has a value.
func (a *Assignment) IsAssigned(v int) bool {
	return a.assigned[v]
}

// Value returns the value assigned to variable v. Only meaningful if
// IsAssigned(v) is true.
func (a *Assignment) Value(v int) bool {
	return a.value[v]
}

// AddLiteralTrue appends l to the assignment, setting var(l) to l.Positive().
// It is a no-op (beyond re-recording the trail entry) if the variable is
// already assigned to the same value; callers are expected to not assign a
// variable two different ways.
func (a *Assignment) AddLiteralTrue(l sat.Literal) {
	v := l.Var()
	a.assigned[v] = true
	a.value[v] = l.Positive()
	a.Trail = append(a.Trail, l)
}

// Literals returns the current assignment as a flat, deduplicated literal
// slice suitable for the verifier or CLI output.
func (a *Assignment) Literals() []sat.Literal {
	out := make([]sat.Literal, 0, len(a.Trail))
	for v := 1; v < len(a.assigned); v++ {
		if a.assigned[v] {
			out = append(out, sat.NewLiteral(v, a.value[v]))
		}
	}
	return out
}

// UnitPropagation repeatedly finds a unit clause, records its literal in the
// assignment, deletes satisfied clauses and strikes falsified literals, until
// a fixed point is reached. It returns false if a contradiction is detected
// (either two complementary unit clauses coexist, or striking produces an
// empty clause), in which case the formula is left holding a single empty
// clause as a sentinel.
func (f *Formula) UnitPropagation(a *Assignment) bool {
	for {
		if f.twoComplementaryUnits() {
			f.collapseToEmptyClause()
			return false
		}

		unitIdx := f.firstUnitClause()
		if unitIdx < 0 {
			return true // fixed point, no contradiction observed
		}

		u := f.Clauses[unitIdx][0]
		a.AddLiteralTrue(u)

		kept := f.Clauses[:0]
		for _, c := range f.Clauses {
			if c.contains(u) {
				continue // clause satisfied, drop it
			}
			nc := strike(c, u.Neg())
			if len(nc) == 0 {
				f.collapseToEmptyClause()
				return false
			}
			kept = append(kept, nc)
		}
		f.Clauses = kept
	}
}

func (f *Formula) firstUnitClause() int {
	for i, c := range f.Clauses {
		if len(c) == 1 {
			return i
		}
	}
	return -1
}

func (f *Formula) twoComplementaryUnits() bool {
	units := map[sat.Literal]bool{}
	for _, c := range f.Clauses {
		if len(c) != 1 {
			continue
		}
		if units[c[0].Neg()] {
			return true
		}
		units[c[0]] = true
	}
	return false
}

func (f *Formula) collapseToEmptyClause() {
	f.Clauses = []Clause{{}}
}

// strike returns a clause with l removed, leaving the original untouched.
func strike(c Clause, l sat.Literal) Clause {
	if !c.contains(l) {
		return c
	}
	out := make(Clause, 0, len(c))
	for _, x := range c {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}

// EliminatePureLiterals finds variables that, across all remaining clauses,
// appear in only one polarity, assigns that polarity true, and drops every
// clause containing the pure literal. It repeats to a fixed point.
//
// Polarity is tracked with two independent per-variable counters rather than
// a single combined +1/-1 key, so that a variable with equally many positive
// and negative occurrences is never mistaken for pure (see DESIGN.md).
func (f *Formula) EliminatePureLiterals(a *Assignment) {
	for {
		posCount := make([]int, f.NumVars+1)
		negCount := make([]int, f.NumVars+1)
		for _, c := range f.Clauses {
			for _, l := range c {
				if l.Positive() {
					posCount[l.Var()]++
				} else {
					negCount[l.Var()]++
				}
			}
		}

		pure := map[int]sat.Literal{}
		for v := 1; v <= f.NumVars; v++ {
			if a.IsAssigned(v) {
				continue
			}
			switch {
			case posCount[v] > 0 && negCount[v] == 0:
				pure[v] = sat.NewLiteral(v, true)
			case negCount[v] > 0 && posCount[v] == 0:
				pure[v] = sat.NewLiteral(v, false)
			}
		}
		if len(pure) == 0 {
			return
		}

		for _, l := range pure {
			a.AddLiteralTrue(l)
		}

		kept := f.Clauses[:0]
		for _, c := range f.Clauses {
			drop := false
			for _, l := range c {
				if pl, ok := pure[l.Var()]; ok && pl == l {
					drop = true
					break
				}
			}
			if !drop {
				kept = append(kept, c)
			}
		}
		f.Clauses = kept
	}
}

// SimplifyUnder removes every clause containing l (it is now satisfied),
// strikes every occurrence of -l from the rest, and records l as true in
// the given assignment. Resulting empty clauses are retained so that
// HasEmptyClause can detect the conflict.
func (f *Formula) SimplifyUnder(l sat.Literal, a *Assignment) {
	a.AddLiteralTrue(l)

	kept := f.Clauses[:0]
	for _, c := range f.Clauses {
		if c.contains(l) {
			continue
		}
		kept = append(kept, strike(c, l.Neg()))
	}
	f.Clauses = kept
}
