package pbls

// NeighborIndex maps each variable to the set of distinct variables it
// co-occurs with in some constraint. It is a diagnostic structure: the flip
// engine does not consult it (see the design note in flip.go about the
// "affected variables" strategy actually used), but it backs
// Engine.DebugDump and the debug-assertion helpers in debug.go.
type NeighborIndex [][]Var

// BuildNeighborIndex computes the neighbor index for p. Index 0 (the
// sentinel) is always empty.
func BuildNeighborIndex(p *Problem) NeighborIndex {
	n := p.numVars
	idx := make(NeighborIndex, n+1)
	for v := 1; v <= n; v++ {
		if len(p.varTerms[v]) == 0 {
			continue
		}
		seen := make(map[Var]bool)
		for _, occ := range p.varTerms[v] {
			for _, t := range p.constraints[occ.Constraint].Terms {
				if t.Var == Var(v) || seen[t.Var] {
					continue
				}
				seen[t.Var] = true
				idx[v] = append(idx[v], t.Var)
			}
		}
	}
	return idx
}
