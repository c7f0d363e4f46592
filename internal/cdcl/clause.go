package cdcl

import (
	"strings"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

// Clause is an original or learned clause. Per spec §3, size == len(literals)
// at rest; during propagation only literals[0] and literals[1] -- the two
// watched positions -- are guaranteed meaningful for clauses of size >= 2.
type Clause struct {
	literals []sat.Literal
	learned  bool
	activity float64
}

// Literals returns the clause's current literals, for diagnostics and
// verification; callers must not mutate the returned slice.
func (c *Clause) Literals() []sat.Literal { return c.literals }

func (c *Clause) String() string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, l := range c.literals {
		if i > 0 {
			sb.WriteString(" ∨ ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// newClause builds a Clause from tmpLiterals, installing its two watches.
// For original (non-learned) clauses it first deduplicates literals, drops
// the clause if it is a tautology or already satisfied under the current
// (root-level) assignment, and strikes already-false literals. It returns
// (nil, true) when the clause was trivially satisfied,
// (nil, false) when the clause is a root-level contradiction, and
// (nil, <unit propagation result>) when the clause reduces to a single
// literal.
func newClause(s *Solver, tmpLiterals []sat.Literal, learned bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learned {
		seen := map[sat.Literal]bool{}
		for i := size - 1; i >= 0; i-- {
			if seen[tmpLiterals[i].Neg()] {
				return nil, true // tautology: clause is always true
			}
			if seen[tmpLiterals[i]] {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
			seen[tmpLiterals[i]] = true

			switch s.LitValue(tmpLiterals[i]) {
			case sat.True:
				return nil, true // clause is already true
			case sat.False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false // empty clause: root-level conflict
	case 1:
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := &Clause{learned: learned}
		c.literals = append([]sat.Literal(nil), tmpLiterals...)

		if learned {
			// Place the literal with the highest decision level (the second
			// most recently falsified literal, after the asserting literal
			// already at position 0) at position 1, so that unit detection
			// after the backjump is correct (spec §4.5 step 6).
			maxLevel, wl := -1, -1
			for i, l := range c.literals {
				if lvl := s.level[l.Var()]; lvl > maxLevel {
					maxLevel, wl = lvl, i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		}

		s.watch(c, c.literals[0])
		s.watch(c, c.literals[1])
		return c, true
	}
}

// locked reports whether c is the antecedent of its first watched literal's
// variable, meaning it must not be removed by reduceDB: doing so would leave
// a dangling reference from that variable's assignment.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].Var()] == c
}

// remove unregisters c's watches. Used by reduceDB; original clauses are
// never removed.
func (c *Clause) remove(s *Solver) {
	s.unwatch(c, c.literals[0])
	s.unwatch(c, c.literals[1])
}

// propagate is invoked when falseLit -- one of c's two watched literals --
// has just been assigned false. It returns true if c remains satisfiable
// (and re-registers its watch, possibly on a different literal), or false if
// c is now a conflicting clause (every literal false).
func (c *Clause) propagate(s *Solver, falseLit sat.Literal) bool {
	if c.literals[0] == falseLit {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.LitValue(c.literals[0]) == sat.True {
		s.watch(c, falseLit)
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != sat.False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c, c.literals[1])
			return true
		}
	}

	// Every literal but literals[0] is false: literals[0] is forced true, or
	// this is a conflict if it is already assigned false.
	s.watch(c, falseLit)
	return s.enqueue(c.literals[0], c)
}

// explainConflict returns the negation of every literal in c, used by
// conflict analysis when c is the conflicting clause itself. Resolving
// through a learned clause bumps its activity, symmetrically with variable
// activity bumping (spec §4.5).
func (c *Clause) explainConflict(s *Solver) []sat.Literal {
	out := make([]sat.Literal, len(c.literals))
	for i, l := range c.literals {
		out[i] = l.Neg()
	}
	if c.learned {
		s.bumpClauseActivity(c)
	}
	return out
}

// explainAssign returns the negation of every literal in c except
// literals[0] (the one c forced true), used by conflict analysis when c is
// the antecedent of an implied literal on the trail.
func (c *Clause) explainAssign(s *Solver) []sat.Literal {
	out := make([]sat.Literal, len(c.literals)-1)
	for i, l := range c.literals[1:] {
		out[i] = l.Neg()
	}
	if c.learned {
		s.bumpClauseActivity(c)
	}
	return out
}
