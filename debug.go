package pbls

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
)

// CheckInvariants recomputes slack, score and sscore from a fresh State
// seeded with the same cur_solution, and compares them against s, returning
// an *InvariantError describing the first mismatch found (or nil). It
// implements the "internal invariant violation" check from the error
// handling design: always available so the test suite can exercise it
// directly, regardless of whether debugAssert (below) is compiled in.
func (s *State) CheckInvariants() error {
	n := s.problem.numVars

	want := newState(s.problem)
	copy(want.curSolution, s.curSolution)
	for c, cons := range s.problem.constraints {
		want.slack[c] = cons.K
	}
	want.initSlack()
	want.initScores()

	for c := range s.problem.constraints {
		if want.slack[c] != s.slack[c] {
			return &InvariantError{Msg: fmt.Sprintf(
				"constraint %d: slack = %d, want %d (from-scratch)", c, s.slack[c], want.slack[c])}
		}
	}
	for v := 1; v <= n; v++ {
		vv := Var(v)
		if want.score[vv] != s.score[vv] {
			return &InvariantError{Msg: fmt.Sprintf(
				"var %d: score = %d, want %d (from-scratch)", v, s.score[vv], want.score[vv])}
		}
		if want.sscore[vv] != s.sscore[vv] {
			return &InvariantError{Msg: fmt.Sprintf(
				"var %d: sscore = %d, want %d (from-scratch)", v, s.sscore[vv], want.sscore[vv])}
		}
	}
	for _, c := range s.unsatStack {
		if s.slack[c] >= 0 {
			return &InvariantError{Msg: fmt.Sprintf("constraint %d on unsat-stack but slack = %d", c, s.slack[c])}
		}
	}
	for v := 1; v <= n; v++ {
		vv := Var(v)
		if (s.score[vv] > 0) != s.inGoodVarStack[vv] {
			return &InvariantError{Msg: fmt.Sprintf(
				"var %d: score = %d but in_goodvar_stack = %v", v, s.score[vv], s.inGoodVarStack[vv])}
		}
	}
	return nil
}

// debugAssert calls CheckInvariants and, on failure, pretty-prints the
// offending state (via the neighbor index, for the per-variable context
// print_info used to give) before returning the error. Only the
// pblsdebug-tagged build (see debug_on.go / debug_off.go) actually invokes
// this from the restart loop; it is always safe to call directly from tests.
func (s *State) debugAssert() error {
	if err := s.CheckInvariants(); err != nil {
		neighbors := BuildNeighborIndex(s.problem)
		fmt.Fprintf(debugDumpSink, "pbls: invariant check failed: %s\n", err)
		pretty.Fprintf(debugDumpSink, "%# v\n", neighbors)
		return err
	}
	return nil
}

// debugDumpSink receives debugAssert's diagnostic dump and defaults to
// io.Discard. DebugDump does not use it: it writes to its own writer
// argument.
var debugDumpSink io.Writer = io.Discard

// DebugDump writes one diagnostic line per variable - neighbor count,
// current value, conf_change, score, sscore - the idiomatic-Go
// re-expression of local_search::print_info, backed by the C7 neighbor
// index.
func (e *Engine) DebugDump(w io.Writer) {
	neighbors := BuildNeighborIndex(e.problem)
	s := e.state
	for v := 1; v <= e.problem.numVars; v++ {
		vv := Var(v)
		fmt.Fprintf(w, "%d\t%v\t%v\t%d\t%d\n",
			len(neighbors[v]), s.curSolution[vv], s.confChange[vv], s.score[vv], s.sscore[vv])
	}
}
