package pbls

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomCardinalityProblem builds a problem with numVars variables and
// numConstraints random cardinality constraints, each over a random subset
// of 1..numVars with a random sense and a random bound in [0, arity].
func randomCardinalityProblem(rng *rand.Rand, numVars, numConstraints, maxArity int) *Problem {
	p := NewProblem()
	for i := 0; i < numConstraints; i++ {
		arity := 1 + rng.Intn(maxArity)
		if arity > numVars {
			arity = numVars
		}
		perm := rng.Perm(numVars)
		terms := make([]Term, arity)
		for j := range terms {
			terms[j] = Term{Var: Var(1 + perm[j]), Sense: rng.Intn(2) == 1}
		}
		k := rng.Intn(arity + 1)
		if _, err := p.AddCardinality(terms, k); err != nil {
			panic(err)
		}
	}
	p.growTo(Var(numVars))
	return p
}

func TestReinitSatisfiesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		p := randomCardinalityProblem(rng, 1+rng.Intn(12), rng.Intn(10), 4)
		s := newState(p)
		s.reinit(rng, 2*p.numVars)
		require.NoError(t, s.CheckInvariants())
		checkUnsatStackConsistency(t, s)
		checkGoodVarStackConsistency(t, s)
	}
}

func TestSentinelNeverWinsByDefault(t *testing.T) {
	p := NewProblem()
	s := newState(p)
	rng := rand.New(rand.NewSource(2))
	s.reinit(rng, 2*p.numVars)
	require.Equal(t, sentinelScore, s.score[0])
	require.Equal(t, 1, s.timeStamp[0])
	require.False(t, s.confChange[0])
}

func checkUnsatStackConsistency(t *testing.T, s *State) {
	t.Helper()
	seen := make(map[int]bool)
	for idx, c := range s.unsatStack {
		require.False(t, seen[c], "constraint %d duplicated in unsat stack", c)
		seen[c] = true
		require.Equal(t, idx, s.indexInUnsatStack[c])
		require.Less(t, s.slack[c], 0)
	}
	for c := range s.problem.constraints {
		if s.slack[c] < 0 {
			require.True(t, seen[c], "constraint %d has negative slack but is not on unsat stack", c)
		}
	}
}

func checkGoodVarStackConsistency(t *testing.T, s *State) {
	t.Helper()
	seen := make(map[Var]bool)
	for _, v := range s.goodVarStack {
		require.False(t, seen[v])
		seen[v] = true
		require.True(t, s.inGoodVarStack[v])
		require.Greater(t, s.score[v], 0)
	}
	for v := 1; v <= s.problem.numVars; v++ {
		vv := Var(v)
		if s.score[vv] > 0 {
			require.True(t, seen[vv], "var %d has positive score but is not on goodvar stack", v)
		}
	}
}
