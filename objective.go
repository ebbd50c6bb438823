package pbls

import "time"

// updateObjective evaluates the linear objective under the current
// assignment and, if it strictly improves on the best value seen so far in
// this search, records cur_solution as the new best_solution and stamps
// elapsed as best_time. It returns the objective value just computed.
//
// bestObjectiveValue starts at negInfObjective so that the first feasible
// assignment of a search is always recorded, even one with an objective
// value of zero (e.g. a problem with no objective terms at all).
func (s *State) updateObjective(elapsed time.Duration) int {
	value := 0
	for _, ot := range s.problem.objective {
		if s.curSolution[ot.Var] {
			value += ot.Weight
		}
	}
	if value > s.bestObjectiveValue {
		copy(s.bestSolution, s.curSolution)
		s.bestObjectiveValue = value
		s.bestTime = elapsed
	}
	return value
}
