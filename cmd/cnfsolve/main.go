// Command cnfsolve decides satisfiability of a DIMACS CNF formula using one
// of four backends: binary resolution, Davis-Putnam, DPLL, or CDCL.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/cdcl"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/cnferr"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/dimacs"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/dp"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/dpll"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/kernel"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/resolution"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/internal/verify"
	"github.com/TeoBulboacaUVT/MPI-SAT-Unified-System/sat"
)

var (
	flagSolver      = flag.String("solver", "cdcl", "backend to use: dpll, dp, res, or cdcl")
	flagInput       = flag.String("input", "", "DIMACS CNF instance file; if empty and -interactive is not set, read positional arg")
	flagBench       = flag.String("bench", "", "append \"<instance>\\n<elapsed_ms>\\n\" to this results log")
	flagInteractive = flag.Bool("interactive", false, "run the menu-driven interactive loop instead of a single solve")
	flagGzip        = flag.Bool("gzip", false, "treat the input file as gzip-compressed")
	flagDebugTrail  = flag.Bool("debugtrail", false, "pretty-print the CDCL trail after a CDCL solve")
	flagCPUProfile  = flag.Bool("cpuprof", false, "save pprof CPU profile to ./cpuprof")
	flagMemProfile  = flag.Bool("memprof", false, "save pprof memory profile to ./memprof")
)

// Exit codes, per the system's error-handling contract: 0 success,
// 1 generic/parse/IO error, 2 unknown error, 3 out of memory.
const (
	exitOK           = 0
	exitGenericError = 1
	exitUnknownError = 2
	exitOutOfMemory  = 3
)

func main() {
	flag.Parse()

	if *flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
	}

	var err error
	if *flagInteractive {
		err = runInteractive()
	} else {
		path := *flagInput
		if path == "" {
			path = flag.Arg(0)
		}
		if path == "" {
			log.Fatal("missing instance file: pass -input=<path> or a positional argument")
		}
		err = runOnce(path, *flagSolver)
	}

	// Stopped explicitly: os.Exit below skips deferred calls.
	if *flagCPUProfile {
		pprof.StopCPUProfile()
	}

	if *flagMemProfile {
		f, ferr := os.Create("memprof")
		if ferr == nil {
			pprof.WriteHeapProfile(f)
			f.Close()
		}
	}

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cnferr.ErrOutOfMemory):
		return exitOutOfMemory
	case errors.Is(err, cnferr.ErrParse), errors.Is(err, cnferr.ErrIO):
		return exitGenericError
	default:
		return exitUnknownError
	}
}

// runInteractive implements the {1: DPLL, 2: DP, 3: Resolution, 4: CDCL,
// 0: exit} menu loop, reading the instance path from stdin on each
// iteration.
func runInteractive() error {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("1) DPLL  2) Davis-Putnam  3) Resolution  4) CDCL  0) exit")
		fmt.Print("choice: ")
		choiceLine, err := in.ReadString('\n')
		if err != nil {
			return nil // EOF on stdin ends the session cleanly
		}
		choice := strings.TrimSpace(choiceLine)

		var solverName string
		switch choice {
		case "0":
			return nil
		case "1":
			solverName = "dpll"
		case "2":
			solverName = "dp"
		case "3":
			solverName = "res"
		case "4":
			solverName = "cdcl"
		default:
			fmt.Println("unrecognized choice")
			continue
		}

		fmt.Print("instance path: ")
		pathLine, err := in.ReadString('\n')
		if err != nil {
			return nil
		}
		path := strings.TrimSpace(pathLine)
		if path == "" {
			continue
		}

		if err := runOnce(path, solverName); err != nil {
			fmt.Printf("c error: %s\n", err)
		}
	}
}

func runOnce(path, solverName string) error {
	inst, err := dimacs.Load(path, *flagGzip)
	if err != nil {
		return err
	}

	fmt.Printf("c variables:  %d\n", inst.NumVars)
	fmt.Printf("c clauses:    %d\n", len(inst.Clauses))

	start := time.Now()
	verdict, model, conflicts, err := solve(solverName, inst)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	if conflicts >= 0 {
		fmt.Printf("c conflicts:  %d (%.2f /sec)\n", conflicts, float64(conflicts)/elapsed.Seconds())
	}

	if verdict && model != nil {
		if ok, reason := verify.Verify(inst.Clauses, model); !ok {
			fmt.Printf("c warning:    %s: %s\n", cnferr.ErrInternalInvariant, reason)
			fmt.Println("c status:     UNSATISFIABLE")
		} else {
			fmt.Println("c status:     SATISFIABLE")
		}
	} else if verdict {
		fmt.Println("c status:     SATISFIABLE")
	} else {
		fmt.Println("c status:     UNSATISFIABLE")
	}

	if *flagBench != "" {
		if err := appendBenchResult(*flagBench, path, elapsed); err != nil {
			return err
		}
	}

	return nil
}

// solve dispatches to the named backend, returning (satisfiable, model,
// conflictCount, error). conflictCount is -1 for backends that don't track
// it; model is nil for backends that don't produce one (resolution) or when
// the formula is unsatisfiable.
func solve(name string, inst dimacs.Instance) (bool, []sat.Literal, int64, error) {
	switch name {
	case "dpll":
		f := kernel.NewFormula(inst.NumVars, inst.Clauses)
		a := kernel.NewAssignment(inst.NumVars)
		ok, res := dpll.Solve(f, a)
		if !ok {
			return false, nil, -1, nil
		}
		return true, res.Literals(), -1, nil

	case "dp":
		ok, res := dp.Solve(inst.NumVars, inst.Clauses)
		if !ok {
			return false, nil, -1, nil
		}
		return true, res.Literals(), -1, nil

	case "res":
		ok := resolution.Saturate(inst.NumVars, inst.Clauses)
		return ok, nil, -1, nil

	case "cdcl":
		s := cdcl.NewSolver(inst.NumVars)
		for _, c := range inst.Clauses {
			if err := s.AddClause(c); err != nil {
				return false, nil, 0, fmt.Errorf("%w: %s", cnferr.ErrInternalInvariant, err)
			}
		}
		verdict := s.Solve()
		if *flagDebugTrail {
			fmt.Println(s.DumpTrail())
		}
		if verdict != cdcl.Satisfiable {
			return false, nil, s.TotalConflicts, nil
		}
		return true, s.Model(), s.TotalConflicts, nil

	default:
		return false, nil, -1, fmt.Errorf("%w: unknown solver %q", cnferr.ErrParse, name)
	}
}

func appendBenchResult(logPath, instancePath string, elapsed time.Duration) error {
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s", cnferr.ErrIO, err)
	}
	defer f.Close()

	base := instancePath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	_, err = fmt.Fprintf(f, "%s\n%d\n", base, elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("%w: %s", cnferr.ErrIO, err)
	}
	return nil
}
