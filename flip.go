package pbls

// Flip applies a single-variable flip and updates every derived counter in
// State by the constraint-local delta rules keyed on slack transitions. It
// runs in O(sum of the arities of the constraints touching f), independent
// of the total variable count.
//
// It is the caller's responsibility to record the flip's time-stamp (the
// restart driver does this after Flip returns, mirroring how the original
// local_search::operator() sets time_stamp[flipvar] after local_search::flip
// rather than inside it).
func (s *State) Flip(f Var) {
	s.curSolution[f] = !s.curSolution[f]

	origScore := s.score[f]
	origSscore := s.sscore[f]

	// affected collects the variables that receive a strictly positive
	// score delta during this flip; these are the only candidates for
	// conf_change / good-variable-stack insertion below (design note (ii)
	// in place of a full neighbor-index sweep - see neighbor.go).
	var affected []Var

	for _, occ := range s.problem.varTerms[f] {
		c := occ.Constraint
		cons := &s.problem.constraints[c]

		if s.curSolution[f] != occ.Sense {
			// f's term in c just became satisfied: slack decreases.
			s.slack[c]--
			switch s.slack[c] {
			case -2: // violation deepens: already unsat, now -1 -> -2
				for _, t := range cons.Terms {
					if s.curSolution[t.Var] != t.Sense {
						s.score[t.Var]--
					}
				}
			case -1: // sat -> unsat
				for _, t := range cons.Terms {
					s.cscc[t.Var]++
					s.score[t.Var]++
					affected = append(affected, t.Var)
					if s.curSolution[t.Var] != t.Sense {
						s.sscore[t.Var]++
					}
				}
				s.pushUnsat(c)
			case 0: // tight but still sat
				for _, t := range cons.Terms {
					if s.curSolution[t.Var] == t.Sense {
						s.score[t.Var]--
						s.sscore[t.Var]--
					}
				}
			}
		} else {
			// f's term in c just became unsatisfied: slack increases.
			s.slack[c]++
			switch s.slack[c] {
			case 1: // was tight, now slack
				for _, t := range cons.Terms {
					if s.curSolution[t.Var] == t.Sense {
						s.score[t.Var]++
						s.sscore[t.Var]++
						affected = append(affected, t.Var)
					}
				}
			case 0: // unsat -> sat
				for _, t := range cons.Terms {
					s.cscc[t.Var]++
					s.score[t.Var]--
					if s.curSolution[t.Var] != t.Sense {
						s.sscore[t.Var]--
					}
				}
				s.removeUnsat(c)
			case -1: // violation shallows: -2 -> -1
				for _, t := range cons.Terms {
					if s.curSolution[t.Var] != t.Sense {
						s.score[t.Var]++
						affected = append(affected, t.Var)
					}
				}
			}
		}
	}

	s.score[f] = -origScore
	s.sscore[f] = -origSscore
	s.confChange[f] = false
	s.cscc[f] = 0

	// Evict goodvar-stack entries that no longer qualify.
	for i := len(s.goodVarStack) - 1; i >= 0; i-- {
		v := s.goodVarStack[i]
		if s.score[v] <= 0 {
			last := len(s.goodVarStack) - 1
			s.goodVarStack[i] = s.goodVarStack[last]
			s.goodVarStack = s.goodVarStack[:last]
			s.inGoodVarStack[v] = false
		}
	}

	// Mark every variable touched by a positive score delta as disturbed,
	// and admit newly-positive scorers into the goodvar stack.
	for _, v := range affected {
		s.confChange[v] = true
		if s.score[v] > 0 && !s.inGoodVarStack[v] {
			s.goodVarStack = append(s.goodVarStack, v)
			s.inGoodVarStack[v] = true
		}
	}
}
