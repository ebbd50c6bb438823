package pbls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddCardinalityRejectsNegativeBound(t *testing.T) {
	p := NewProblem()
	_, err := p.AddCardinality([]Term{{Var: 1, Sense: false}}, -1)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAddCardinalityGrowsNumVars(t *testing.T) {
	p := NewProblem()
	_, err := p.AddCardinality([]Term{{Var: 3, Sense: false}, {Var: 1, Sense: true}}, 1)
	require.NoError(t, err)
	require.Equal(t, 3, p.NumVars())
	require.Equal(t, 1, p.NumConstraints())
}

func TestAddClauseIsAtMostNMinus1(t *testing.T) {
	p := NewProblem()
	id, err := p.AddClause(Term{Var: 1, Sense: true}, Term{Var: 2, Sense: false}, Term{Var: 3, Sense: true})
	require.NoError(t, err)
	cons := p.Constraints()[id]
	require.Equal(t, 2, cons.K)
	require.Len(t, cons.Terms, 3)
}

func TestAddSoftAccumulatesWeight(t *testing.T) {
	p := NewProblem()
	p.AddSoft(1, 3)
	p.AddSoft(1, 4)
	require.Equal(t, 7, p.objWeight[1])
	require.Len(t, p.Objective(), 2)
}

func TestAddReifiedCardinality(t *testing.T) {
	p := NewProblem()
	lits := []Term{{Var: 1, Sense: false}, {Var: 2, Sense: false}, {Var: 3, Sense: false}}
	reif := Term{Var: 4, Sense: false}
	first, second, err := p.AddReifiedCardinality(lits, reif, 2)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	c1 := p.Constraints()[first]
	require.Equal(t, 3, c1.K)
	// n - k - 1 = 0 copies of not(reif) appended to the raw lits.
	require.Len(t, c1.Terms, 3)

	c2 := p.Constraints()[second]
	require.Equal(t, 3, c2.K)
	// negated lits plus k copies of reif.
	require.Len(t, c2.Terms, 3+2)
}

func TestGrowToPanicsOnNonPositiveVar(t *testing.T) {
	p := NewProblem()
	require.Panics(t, func() {
		p.AddCardinality([]Term{{Var: 0, Sense: false}}, 0)
	})
}
