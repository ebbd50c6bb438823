package pbls

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlipInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(10)
		p := randomCardinalityProblem(rng, n, rng.Intn(8), 4)
		s := newState(p)
		s.reinit(rng, 2*n)

		before := snapshot(s)
		v := Var(1 + rng.Intn(n))

		s.Flip(v)
		s.Flip(v)

		after := snapshot(s)
		require.Equal(t, before.curSolution, after.curSolution)
		require.Equal(t, before.slack, after.slack)
		require.Equal(t, before.score, after.score)
		require.Equal(t, before.sscore, after.sscore)
	}
}

func TestFlipMaintainsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 30; trial++ {
		n := 1 + rng.Intn(12)
		p := randomCardinalityProblem(rng, n, rng.Intn(10), 4)
		s := newState(p)
		maxSteps := 2 * n
		s.reinit(rng, maxSteps)

		for step := 0; step < maxSteps; step++ {
			v := Var(1 + rng.Intn(n))
			s.Flip(v)
			s.timeStamp[v] = step + 1
			require.NoError(t, s.CheckInvariants())
			checkUnsatStackConsistency(t, s)
			checkGoodVarStackConsistency(t, s)
		}
	}
}

// stateSnapshot captures the observable fields an outside test can compare
// across a sequence of operations without reaching into unexported State
// internals from another file's perspective (this file is part of the same
// package, but keeping a narrow snapshot type makes the involution property
// explicit about exactly what it claims is restored).
type stateSnapshot struct {
	curSolution []bool
	slack       []int
	score       []int
	sscore      []int
}

func snapshot(s *State) stateSnapshot {
	return stateSnapshot{
		curSolution: append([]bool(nil), s.curSolution...),
		slack:       append([]int(nil), s.slack...),
		score:       append([]int(nil), s.score...),
		sscore:      append([]int(nil), s.sscore...),
	}
}
