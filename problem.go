// Package pbls implements a stochastic local-search engine for pseudo-Boolean
// problems expressed as a conjunction of cardinality (at-most-k) constraints
// together with an optional linear objective over the same variables. The
// scoring and flip machinery is modeled directly on Z3's cardinality
// local-search module (sat_local_search.cpp).
package pbls

import "fmt"

// Var identifies a problem variable. Variables are numbered 1..N; 0 is
// reserved as the sentinel that never wins a tie-break (see State).
type Var int

// Term is a (variable, sense) pair appearing in a constraint's body. A term
// is satisfied under an assignment iff the variable's current value differs
// from sense.
type Term struct {
	Var   Var
	Sense bool
}

// Constraint is an at-most-k cardinality constraint: the number of satisfied
// terms in Terms must not exceed K.
type Constraint struct {
	Terms []Term
	K     int
}

// ObjectiveTerm contributes Weight to the objective value whenever Var is
// assigned true.
type ObjectiveTerm struct {
	Var    Var
	Weight int
}

// occurrence records, for a variable's occurrence list, which constraint it
// appears in and with what sense.
type occurrence struct {
	Constraint int
	Sense      bool
}

// Problem stores the variables, constraints and objective of a pseudo-Boolean
// instance. It is populated once by the operations below and is never
// mutated once search begins.
type Problem struct {
	numVars     int
	constraints []Constraint
	varTerms    [][]occurrence // index 1..numVars; varTerms[0] unused
	objective   []ObjectiveTerm
	objWeight   []int // index 0..numVars; 0 where the variable has no objective term
}

// NewProblem returns an empty problem with no variables, constraints or
// objective terms.
func NewProblem() *Problem {
	return &Problem{
		varTerms:  make([][]occurrence, 1),
		objWeight: make([]int, 1),
	}
}

// NumVars reports the number of variables seen so far (the highest variable
// id passed to any Add* call).
func (p *Problem) NumVars() int { return p.numVars }

// NumConstraints reports the number of constraints added so far.
func (p *Problem) NumConstraints() int { return len(p.constraints) }

// Constraints returns the problem's constraints in the order they were
// added. The returned slice must not be mutated.
func (p *Problem) Constraints() []Constraint { return p.constraints }

// Objective returns the objective terms in the order they were added. The
// returned slice must not be mutated.
func (p *Problem) Objective() []ObjectiveTerm { return p.objective }

func (p *Problem) growTo(v Var) {
	if v <= 0 {
		panic(fmt.Sprintf("pbls: non-positive variable id %d", v))
	}
	for Var(p.numVars) < v {
		p.numVars++
		p.varTerms = append(p.varTerms, nil)
		p.objWeight = append(p.objWeight, 0)
	}
}

// AddCardinality appends an at-most-k constraint over terms and returns its
// constraint id. k must be non-negative; a negative bound is a configuration
// error (the production of a malformed bound is always a caller bug, never a
// search-time condition).
func (p *Problem) AddCardinality(terms []Term, k int) (int, error) {
	if k < 0 {
		return 0, &ConfigError{Msg: fmt.Sprintf("cardinality bound must be non-negative, got %d", k)}
	}
	id := len(p.constraints)
	cons := Constraint{Terms: append([]Term(nil), terms...), K: k}
	for _, t := range cons.Terms {
		p.growTo(t.Var)
		p.varTerms[t.Var] = append(p.varTerms[t.Var], occurrence{Constraint: id, Sense: t.Sense})
	}
	p.constraints = append(p.constraints, cons)
	return id, nil
}

// AddClause appends a disjunctive clause, encoded as the cardinality
// constraint at-most-(n-1) over the same terms (an OR clause in cardinality
// form: not every term can be satisfied simultaneously, i.e. at least one
// term (v, sense) has cur_solution[v] == sense, which is the clause literal
// that holds).
func (p *Problem) AddClause(terms ...Term) (int, error) {
	return p.AddCardinality(terms, len(terms)-1)
}

// AddSoft appends (v, weight) to the objective. Later calls for the same
// variable add to, rather than replace, its existing weight, mirroring how
// add_soft accumulates coefficients when a variable is reachable through
// more than one soft constraint.
func (p *Problem) AddSoft(v Var, weight int) {
	p.growTo(v)
	p.objective = append(p.objective, ObjectiveTerm{Var: v, Weight: weight})
	p.objWeight[v] += weight
}

// AddReifiedCardinality encodes the reified cardinality atom lit <=> (lits
// >= k) as the pair of at-most-n constraints used when importing a reified
// cardinality extension from an enclosing CDCL solver:
//
//	lits + (n-k-1)*not(lit) <= n
//	not(lits) + k*lit       <= n
//
// It returns the ids of both constraints.
func (p *Problem) AddReifiedCardinality(lits []Term, lit Term, k int) (firstID, secondID int, err error) {
	n := len(lits)
	notLit := Term{Var: lit.Var, Sense: !lit.Sense}

	padFirst := n - k - 1
	if padFirst < 0 {
		padFirst = 0
	}
	first := make([]Term, 0, n+padFirst)
	first = append(first, lits...)
	for i := 0; i < padFirst; i++ {
		first = append(first, notLit)
	}
	firstID, err = p.AddCardinality(first, n)
	if err != nil {
		return 0, 0, err
	}

	second := make([]Term, 0, n+k)
	for _, t := range lits {
		second = append(second, Term{Var: t.Var, Sense: !t.Sense})
	}
	for i := 0; i < k; i++ {
		second = append(second, lit)
	}
	secondID, err = p.AddCardinality(second, n)
	if err != nil {
		return 0, 0, err
	}
	return firstID, secondID, nil
}
