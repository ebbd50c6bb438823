package pbls

import (
	"math"
	"math/rand"
	"time"
)

// sentinelScore is the saturating score assigned to the sentinel variable 0
// so that it never wins a score-based tie-break.
const sentinelScore = math.MinInt32

// negInfObjective is the initial value of bestObjectiveValue, chosen low
// enough that the first feasible assignment found always improves on it -
// including the zero-valued objective of a problem with no objective terms.
const negInfObjective = math.MinInt32

// State is the incremental state (C2): per-variable score, sscore, cscc,
// time-stamp and conf-change; per-constraint slack; the unsat-stack and
// good-variable stack with O(1) membership. All arrays are sized N+1, with
// index 0 reserved for the sentinel.
//
// bestSolution, bestObjectiveValue and bestTime are not part of the
// per-restart reset (see reinit): they persist for the lifetime of a search,
// updated only by updateObjective.
type State struct {
	problem *Problem

	curSolution    []bool
	score          []int
	sscore         []int
	cscc           []int
	timeStamp      []int
	confChange     []bool
	inGoodVarStack []bool

	slack             []int
	indexInUnsatStack []int

	unsatStack   []int
	goodVarStack []Var

	bestSolution       []bool
	bestObjectiveValue int
	bestTime           time.Duration
}

// newState allocates a State sized for p. Call reinit before using it.
func newState(p *Problem) *State {
	n := p.numVars
	return &State{
		problem:            p,
		curSolution:        make([]bool, n+1),
		score:              make([]int, n+1),
		sscore:             make([]int, n+1),
		cscc:               make([]int, n+1),
		timeStamp:          make([]int, n+1),
		confChange:         make([]bool, n+1),
		inGoodVarStack:     make([]bool, n+1),
		slack:              make([]int, len(p.constraints)),
		indexInUnsatStack:  make([]int, len(p.constraints)),
		bestSolution:       make([]bool, n+1),
		bestObjectiveValue: negInfObjective,
	}
}

// reinit performs a full reset of the restart-scoped state (C2): a fresh
// random assignment, slack recomputed for every constraint, scores
// recomputed from scratch, and the unsat/good-variable stacks rebuilt. It is
// invoked once per restart (C5); it never touches bestSolution,
// bestObjectiveValue or bestTime.
func (s *State) reinit(rng *rand.Rand, maxSteps int) {
	n := s.problem.numVars

	for v := 1; v <= n; v++ {
		s.curSolution[v] = rng.Intn(2) == 1
		s.score[v] = 0
		s.sscore[v] = 0
		s.cscc[v] = 1
		s.timeStamp[v] = 0
		s.confChange[v] = false
		s.inGoodVarStack[v] = false
	}
	s.curSolution[0] = false
	s.score[0] = sentinelScore
	s.sscore[0] = sentinelScore
	s.cscc[0] = 0
	s.timeStamp[0] = maxSteps + 1
	s.confChange[0] = false

	for c, cons := range s.problem.constraints {
		s.slack[c] = cons.K
		s.indexInUnsatStack[c] = -1
	}
	s.unsatStack = s.unsatStack[:0]
	s.goodVarStack = s.goodVarStack[:0]

	s.initSlack()
	s.initScores()
	s.initGoodVars()
}

// initSlack computes every constraint's slack from cur_solution and pushes
// the violated ones onto the unsat-stack.
func (s *State) initSlack() {
	for c := range s.problem.constraints {
		cons := &s.problem.constraints[c]
		for _, t := range cons.Terms {
			if s.curSolution[t.Var] != t.Sense {
				s.slack[c]--
			}
		}
		if s.slack[c] < 0 {
			s.pushUnsat(c)
		}
	}
}

// initScores recomputes every variable's score and sscore from scratch,
// using the same per-constraint sign rules as the incremental flip engine
// (flip.go), applied to the slack values initSlack just computed.
func (s *State) initScores() {
	n := s.problem.numVars
	for v := 1; v <= n; v++ {
		for _, occ := range s.problem.varTerms[v] {
			slack := s.slack[occ.Constraint]
			if s.curSolution[v] != occ.Sense {
				// term currently satisfied: flipping v would remove it,
				// increasing slack.
				if slack <= -1 {
					s.sscore[v]++
					if slack == -1 {
						s.score[v]++
					}
				}
			} else {
				// term currently unsatisfied: flipping v would add it,
				// decreasing slack.
				if slack <= 0 {
					s.sscore[v]--
					if slack == 0 {
						s.score[v]--
					}
				}
			}
		}
	}
}

// initGoodVars rebuilds the good-variable stack from the scores initScores
// just computed.
func (s *State) initGoodVars() {
	n := s.problem.numVars
	for v := 1; v <= n; v++ {
		if s.score[v] > 0 {
			s.inGoodVarStack[v] = true
			s.goodVarStack = append(s.goodVarStack, Var(v))
		}
	}
}

func (s *State) pushUnsat(c int) {
	s.indexInUnsatStack[c] = len(s.unsatStack)
	s.unsatStack = append(s.unsatStack, c)
}

func (s *State) removeUnsat(c int) {
	i := s.indexInUnsatStack[c]
	last := len(s.unsatStack) - 1
	moved := s.unsatStack[last]
	s.unsatStack[i] = moved
	s.indexInUnsatStack[moved] = i
	s.unsatStack = s.unsatStack[:last]
	s.indexInUnsatStack[c] = -1
}
