// Package pbo reads and writes a small textual format for pseudo-Boolean
// problems: a preamble line, a sequence of cardinality-constraint lines, and
// an optional objective line. It plays the role that the teacher package's
// DIMACS reader/writer plays for CNF, extended for cardinality bounds and a
// weighted objective, and is kept outside the pbls package itself so the
// core engine never depends on any particular ingestion format.
//
// Grammar (one statement per line):
//
//	c <comment>                      -- ignored
//	p pbo <num-vars> <num-constraints>
//	<lit> <lit> ... <= <k>            -- cardinality constraint
//	obj: <var>:<weight> <var>:<weight> ...
//
// A literal is a nonzero signed integer; a negative literal -v corresponds
// to the term (v, sense=true), a positive literal v to (v, sense=false), so
// that the natural reading "v must be true to count" lines up with
// pbls.Term's satisfied-iff-cur_solution-differs-from-sense convention.
package pbo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dcabiddu/pbls"
)

// Parse reads a problem in the pbo format from r.
func Parse(r io.Reader) (*pbls.Problem, error) {
	p := pbls.NewProblem()

	var preamble struct {
		vars        int
		constraints int
		seen        bool
	}
	nConstraints := 0

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p ") {
			if preamble.seen {
				return nil, errors.New("pbo: multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "pbo" {
				return nil, errors.Errorf("pbo: malformed problem line %q", line)
			}
			var err error
			preamble.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrap(err, "pbo: malformed var count in problem line")
			}
			preamble.constraints, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrap(err, "pbo: malformed constraint count in problem line")
			}
			preamble.seen = true
			continue
		}
		if strings.HasPrefix(line, "obj:") {
			if err := parseObjective(p, line); err != nil {
				return nil, err
			}
			continue
		}
		if err := parseConstraint(p, line); err != nil {
			return nil, err
		}
		nConstraints++
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "pbo: scanning input")
	}
	if preamble.seen {
		if p.NumVars() != preamble.vars {
			return nil, errors.Errorf("pbo: problem line declares %d vars, but the highest var in the formula is %d", preamble.vars, p.NumVars())
		}
		if nConstraints != preamble.constraints {
			return nil, errors.Errorf("pbo: problem line declares %d constraints, but formula has %d", preamble.constraints, nConstraints)
		}
	}
	return p, nil
}

func parseConstraint(p *pbls.Problem, line string) error {
	idx := strings.Index(line, "<=")
	if idx < 0 {
		return errors.Errorf("pbo: constraint line missing '<=': %q", line)
	}
	termFields := strings.Fields(line[:idx])
	terms := make([]pbls.Term, 0, len(termFields))
	for _, f := range termFields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return errors.Wrapf(err, "pbo: invalid literal %q", f)
		}
		if n == 0 {
			return errors.New("pbo: literal 0 is not a valid variable id")
		}
		if n < 0 {
			terms = append(terms, pbls.Term{Var: pbls.Var(-n), Sense: true})
		} else {
			terms = append(terms, pbls.Term{Var: pbls.Var(n), Sense: false})
		}
	}
	boundField := strings.TrimSpace(line[idx+2:])
	k, err := strconv.Atoi(boundField)
	if err != nil {
		return errors.Wrapf(err, "pbo: invalid bound %q", boundField)
	}
	_, err = p.AddCardinality(terms, k)
	return errors.Wrap(err, "pbo: adding constraint")
}

func parseObjective(p *pbls.Problem, line string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "obj:"))
	for _, f := range strings.Fields(rest) {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 {
			return errors.Errorf("pbo: malformed objective term %q (want var:weight)", f)
		}
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return errors.Wrapf(err, "pbo: invalid objective var %q", parts[0])
		}
		w, err := strconv.Atoi(parts[1])
		if err != nil {
			return errors.Wrapf(err, "pbo: invalid objective weight %q", parts[1])
		}
		p.AddSoft(pbls.Var(v), w)
	}
	return nil
}

// Write renders p back into the pbo format, with a problem line,
// one constraint line per constraint, and a trailing objective line if p has
// objective terms.
func Write(w io.Writer, p *pbls.Problem) error {
	if _, err := fmt.Fprintf(w, "p pbo %d %d\n", p.NumVars(), p.NumConstraints()); err != nil {
		return err
	}
	for _, cons := range p.Constraints() {
		var b strings.Builder
		for _, t := range cons.Terms {
			n := int(t.Var)
			if t.Sense {
				n = -n
			}
			fmt.Fprintf(&b, "%d ", n)
		}
		fmt.Fprintf(&b, "<= %d\n", cons.K)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	if obj := p.Objective(); len(obj) > 0 {
		var b strings.Builder
		b.WriteString("obj:")
		for _, ot := range obj {
			fmt.Fprintf(&b, " %d:%d", ot.Var, ot.Weight)
		}
		b.WriteString("\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
