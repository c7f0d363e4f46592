package cdcl

import "github.com/kr/pretty"

// traceEntry is the shape dumped by DumpTrail: one line per assigned
// variable, in trail order.
type traceEntry struct {
	Literal int
	Level   int
	Reason  string
	Learned bool
}

// DumpTrail renders the current trail with kr/pretty, for use behind a CLI
// debug flag when diagnosing a search that behaves unexpectedly. It is never
// called from the solver's own hot path.
func (s *Solver) DumpTrail() string {
	entries := make([]traceEntry, len(s.trail))
	for i, l := range s.trail {
		v := l.Var()
		e := traceEntry{Literal: int(l), Level: s.level[v]}
		if r := s.reason[v]; r != nil {
			e.Reason = r.String()
			e.Learned = r.learned
		} else {
			e.Reason = "decision"
		}
		entries[i] = e
	}
	return pretty.Sprint(entries)
}
