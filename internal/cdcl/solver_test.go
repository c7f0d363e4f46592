package cdcl

import (
	"testing"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/verify"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

func lit(v int, positive bool) sat.Literal { return sat.NewLiteral(v, positive) }

func mustAdd(t *testing.T, s *Solver, clause ...sat.Literal) {
	t.Helper()
	if err := s.AddClause(clause); err != nil {
		t.Fatalf("AddClause(%v): %v", clause, err)
	}
}

func TestSolver_SeedScenarios(t *testing.T) {
	cases := []struct {
		name     string
		numVars  int
		clauses  [][]sat.Literal
		expected Verdict
	}{
		{
			name:    "trivially satisfiable unit clauses",
			numVars: 2,
			clauses: [][]sat.Literal{
				{lit(1, true)},
				{lit(2, false)},
			},
			expected: Satisfiable,
		},
		{
			name:    "direct contradiction",
			numVars: 1,
			clauses: [][]sat.Literal{
				{lit(1, true)},
				{lit(1, false)},
			},
			expected: Unsatisfiable,
		},
		{
			name:    "both polarities of x1 lead to conflict",
			numVars: 3,
			clauses: [][]sat.Literal{
				{lit(1, true), lit(2, true)},
				{lit(1, true), lit(2, false)},
				{lit(1, false), lit(3, true)},
				{lit(1, false), lit(3, false)},
			},
			expected: Unsatisfiable,
		},
		{
			name:    "chain conflict forces UNSAT",
			numVars: 2,
			clauses: [][]sat.Literal{
				{lit(1, true), lit(2, true)},
				{lit(1, true), lit(2, false)},
				{lit(1, false), lit(2, true)},
				{lit(1, false), lit(2, false)},
			},
			expected: Unsatisfiable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSolver(tc.numVars)
			for _, c := range tc.clauses {
				mustAdd(t, s, c...)
			}
			got := s.Solve()
			if got != tc.expected {
				t.Fatalf("Solve() = %v, want %v", got, tc.expected)
			}
			if got == Satisfiable {
				model := s.Model()
				if ok, reason := verify.Verify(tc.clauses, model); !ok {
					t.Fatalf("model failed verification: %s", reason)
				}
			}
		})
	}
}

// TestSolver_Pigeonhole checks UNSAT on PHP(5,4): five pigeons, four holes,
// each pigeon in at least one hole, no hole holding two pigeons. Variable
// v(p,h) = (p-1)*4 + h, for p in 1..5, h in 1..4.
func TestSolver_Pigeonhole(t *testing.T) {
	const pigeons, holes = 5, 4
	v := func(p, h int) int { return (p-1)*holes + h }

	s := NewSolver(pigeons * holes)
	for p := 1; p <= pigeons; p++ {
		var atLeastOne []sat.Literal
		for h := 1; h <= holes; h++ {
			atLeastOne = append(atLeastOne, lit(v(p, h), true))
		}
		mustAdd(t, s, atLeastOne...)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				mustAdd(t, s, lit(v(p1, h), false), lit(v(p2, h), false))
			}
		}
	}

	if got := s.Solve(); got != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", got)
	}
	if s.TotalConflicts == 0 {
		t.Fatal("expected at least one conflict while proving pigeonhole UNSAT")
	}
}

// TestSolver_ActivityBumpedVariableChosenFirst exercises the VSIDS decision
// heuristic in isolation: a variable whose activity has been bumped (as a
// conflict involving it would) should be the very next decision.
func TestSolver_ActivityBumpedVariableChosenFirst(t *testing.T) {
	s := NewSolver(3)
	mustAdd(t, s, lit(1, true), lit(2, true), lit(3, true))
	// Bump variable 1 twice, as two conflicts involving it would.
	s.bumpVarActivity(lit(1, true))
	s.bumpVarActivity(lit(1, true))

	if got := s.Solve(); got != Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", got)
	}
	if first := s.trail[0]; first.Var() != 1 || s.level[1] != 1 {
		t.Fatalf("first decision = %v at level %d, want variable 1 at level 1", first, s.level[first.Var()])
	}
}

func TestSolver_AddClauseAfterDecisionRejected(t *testing.T) {
	s := NewSolver(2)
	mustAdd(t, s, lit(1, true), lit(2, true))
	s.assume(lit(1, true))
	if err := s.AddClause([]sat.Literal{lit(2, false)}); err != ErrRootLevelOnly {
		t.Fatalf("AddClause after decision = %v, want ErrRootLevelOnly", err)
	}
}

func TestSolver_EmptyClauseIsImmediatelyUnsat(t *testing.T) {
	s := NewSolver(1)
	mustAdd(t, s)
	if got := s.Solve(); got != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", got)
	}
}

func TestSolver_BackjumpSkipsIrrelevantDecisionLevels(t *testing.T) {
	// Variable 1 is decided first but is irrelevant to the 2/3 conflict;
	// analysis must backjump past it rather than merely undo one level.
	s := NewSolver(3)
	mustAdd(t, s, lit(2, true), lit(3, true))
	mustAdd(t, s, lit(2, true), lit(3, false))
	mustAdd(t, s, lit(2, false), lit(3, true))
	mustAdd(t, s, lit(2, false), lit(3, false))

	if got := s.Solve(); got != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", got)
	}
}
