package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

func lits(xs ...int) []sat.Literal {
	out := make([]sat.Literal, len(xs))
	for i, x := range xs {
		out[i] = sat.Literal(x)
	}
	return out
}

func TestUnitPropagation_Basic(t *testing.T) {
	f := NewFormula(3, [][]sat.Literal{
		lits(1),
		lits(-1, 2),
		lits(-2, 3),
	})
	a := NewAssignment(3)

	ok := f.UnitPropagation(a)
	if !ok {
		t.Fatalf("UnitPropagation: want ok, got contradiction")
	}
	if len(f.Clauses) != 0 {
		t.Errorf("UnitPropagation: want no clauses left, got %v", f.Clauses)
	}

	want := map[int]bool{1: true, 2: true, 3: true}
	for v, b := range want {
		if !a.IsAssigned(v) || a.Value(v) != b {
			t.Errorf("var %d: want %v, got assigned=%v value=%v", v, b, a.IsAssigned(v), a.Value(v))
		}
	}
}

func TestUnitPropagation_Contradiction(t *testing.T) {
	f := NewFormula(1, [][]sat.Literal{lits(1), lits(-1)})
	a := NewAssignment(1)

	ok := f.UnitPropagation(a)
	if ok {
		t.Fatalf("UnitPropagation: want contradiction, got ok")
	}
	if !f.HasEmptyClause() {
		t.Errorf("UnitPropagation: want empty-clause sentinel, got %v", f.Clauses)
	}
}

func TestUnitPropagation_Idempotent(t *testing.T) {
	f := NewFormula(3, [][]sat.Literal{
		lits(1),
		lits(-1, 2),
		lits(-2, 3, 1),
		lits(2, 3),
	})
	a := NewAssignment(3)
	f.UnitPropagation(a)

	f2 := f.Clone()
	a2 := a.Clone()
	f2.UnitPropagation(a2)

	if diff := cmp.Diff(f.Clauses, f2.Clauses); diff != "" {
		t.Errorf("UnitPropagation not idempotent on clauses (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Trail, a2.Trail); diff != "" {
		t.Errorf("UnitPropagation not idempotent on trail (-first +second):\n%s", diff)
	}
}

func TestEliminatePureLiterals_Basic(t *testing.T) {
	// x1 only appears positively, x2 only negatively, x3 both.
	f := NewFormula(3, [][]sat.Literal{
		lits(1, 3),
		lits(1, -2),
		lits(-2, -3),
	})
	a := NewAssignment(3)
	f.EliminatePureLiterals(a)

	if !a.IsAssigned(1) || !a.Value(1) {
		t.Errorf("x1: want pure positive, got assigned=%v value=%v", a.IsAssigned(1), a.Value(1))
	}
	if !a.IsAssigned(2) || a.Value(2) {
		t.Errorf("x2: want pure negative, got assigned=%v value=%v", a.IsAssigned(2), a.Value(2))
	}
	if len(f.Clauses) != 0 {
		t.Errorf("want all clauses removed (each contains a pure literal), got %v", f.Clauses)
	}
}

func TestEliminatePureLiterals_BalancedVariableStaysUnassigned(t *testing.T) {
	f := NewFormula(1, [][]sat.Literal{lits(1), lits(-1)})
	a := NewAssignment(1)
	f.EliminatePureLiterals(a)

	if a.IsAssigned(1) {
		t.Errorf("x1 appears both polarities, want unassigned, got value=%v", a.Value(1))
	}
}

func TestEliminatePureLiterals_Idempotent(t *testing.T) {
	f := NewFormula(3, [][]sat.Literal{
		lits(1, 3),
		lits(1, -2),
		lits(-2, -3),
	})
	a := NewAssignment(3)
	f.EliminatePureLiterals(a)

	f2 := f.Clone()
	a2 := a.Clone()
	f2.EliminatePureLiterals(a2)

	if diff := cmp.Diff(f.Clauses, f2.Clauses); diff != "" {
		t.Errorf("EliminatePureLiterals not idempotent on clauses (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Trail, a2.Trail); diff != "" {
		t.Errorf("EliminatePureLiterals not idempotent on trail (-first +second):\n%s", diff)
	}
}

func TestSimplifyUnder_RetainsEmptyClause(t *testing.T) {
	f := NewFormula(1, [][]sat.Literal{lits(-1)})
	a := NewAssignment(1)

	f.SimplifyUnder(sat.Literal(1), a)

	if !f.HasEmptyClause() {
		t.Errorf("SimplifyUnder: want retained empty clause, got %v", f.Clauses)
	}
	if !a.IsAssigned(1) || !a.Value(1) {
		t.Errorf("SimplifyUnder: want x1=true recorded, got assigned=%v value=%v", a.IsAssigned(1), a.Value(1))
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	f := NewFormula(2, [][]sat.Literal{lits(1, 2)})
	g := f.Clone()
	g.Clauses[0][0] = sat.Literal(-1)

	if f.Clauses[0][0] != sat.Literal(1) {
		t.Errorf("Clone aliased underlying clause slice")
	}
}
