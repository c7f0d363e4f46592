package dimacs

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/cnferr"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

func TestParse(t *testing.T) {
	const src = `c a comment line
p cnf 3 2
1 -2 0
c another comment
-1 2 3 0
`
	got, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Instance{
		NumVars: 3,
		Clauses: [][]sat.Literal{
			{sat.NewLiteral(1, true), sat.NewLiteral(2, false)},
			{sat.NewLiteral(1, false), sat.NewLiteral(2, true), sat.NewLiteral(3, true)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MalformedReturnsParseError(t *testing.T) {
	_, err := Parse(strings.NewReader("not a dimacs file\n"))
	if !errors.Is(err, cnferr.ErrParse) {
		t.Fatalf("Parse(malformed) error = %v, want ErrParse", err)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	inst := Instance{
		NumVars: 4,
		Clauses: [][]sat.Literal{
			{sat.NewLiteral(1, true), sat.NewLiteral(2, false), sat.NewLiteral(3, true)},
			{sat.NewLiteral(4, false)},
			{sat.NewLiteral(2, true), sat.NewLiteral(4, true)},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, inst); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(inst, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}
