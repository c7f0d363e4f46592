// Package dimacs reads and writes the DIMACS CNF file format used to
// exchange instances between the system and the outside world (spec §6).
// Parsing itself is delegated to github.com/rhartert/dimacs; this package
// adapts its builder callbacks to the project's sat.Literal representation
// and adds a writer for the round-trip tests.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/cnferr"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

// Instance is a parsed CNF formula: NumVars variables numbered 1..NumVars,
// and Clauses of sat.Literal.
type Instance struct {
	NumVars int
	Clauses [][]sat.Literal
}

// builder adapts extdimacs.Builder to collect literals into sat.Literal
// clauses, converting on the fly rather than through an intermediate [][]int
// pass.
type builder struct {
	inst Instance
}

func (b *builder) Problem(nVars, nClauses int) {
	b.inst.NumVars = nVars
	b.inst.Clauses = make([][]sat.Literal, 0, nClauses)
}

func (b *builder) Clause(tmpClause []int) {
	c := make([]sat.Literal, len(tmpClause))
	for i, raw := range tmpClause {
		if raw > 0 {
			c[i] = sat.NewLiteral(raw, true)
		} else {
			c[i] = sat.NewLiteral(-raw, false)
		}
	}
	b.inst.Clauses = append(b.inst.Clauses, c)
}

func (b *builder) Comment(string) {}

// Parse reads a DIMACS CNF formula from r.
func Parse(r io.Reader) (Instance, error) {
	b := &builder{}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return Instance{}, fmt.Errorf("%w: %s", cnferr.ErrParse, err)
	}
	return b.inst, nil
}

// Load opens filename -- transparently gunzipping it if gzipped is set --
// and parses it as a DIMACS CNF formula.
func Load(filename string, gzipped bool) (Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Instance{}, fmt.Errorf("%w: %s", cnferr.ErrIO, err)
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Instance{}, fmt.Errorf("%w: %s", cnferr.ErrIO, err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Write emits inst in DIMACS CNF format, suitable for round-tripping through
// Parse. It is used by tests to check parse/emit agreement.
func Write(w io.Writer, inst Instance) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", inst.NumVars, len(inst.Clauses)); err != nil {
		return fmt.Errorf("%w: %s", cnferr.ErrIO, err)
	}
	for _, c := range inst.Clauses {
		parts := make([]string, 0, len(c)+1)
		for _, l := range c {
			parts = append(parts, strconv.Itoa(int(l)))
		}
		parts = append(parts, "0")
		if _, err := bw.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return fmt.Errorf("%w: %s", cnferr.ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %s", cnferr.ErrIO, err)
	}
	return nil
}
