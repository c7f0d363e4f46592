// Package cnferr defines the sentinel errors the system's components wrap
// and return, so callers (chiefly the CLI) can classify a failure with
// errors.Is instead of matching on message text.
package cnferr

import "errors"

var (
	// ErrParse reports a malformed DIMACS file: a missing problem line, a
	// clause that doesn't terminate in 0, a non-integer token, or a clause
	// or variable count mismatch against the header.
	ErrParse = errors.New("cnf: malformed input")

	// ErrIO reports failure to open, read, or write an instance or
	// benchmark log file.
	ErrIO = errors.New("cnf: i/o failure")

	// ErrOutOfMemory reports that a backend aborted because the learned
	// clause database or trail grew beyond what the process could hold.
	ErrOutOfMemory = errors.New("cnf: out of memory")

	// ErrInternalInvariant reports that a solver detected its own state was
	// inconsistent with an invariant it depends on (e.g. a model that fails
	// verification, or a clause the CDCL solver refuses to accept). It should
	// never occur; seeing it means a bug exists.
	ErrInternalInvariant = errors.New("cnf: internal invariant violated")
)
