package automata

// Partition applies variable-split refinement on present-state variable
// index `variable` (spec.md section 4.3, "Variable-split refinement"):
// doubles the state space, giving each original state s a twin s' = s+N,
// and replaces every original edge s ->phi t with four edges splitting on
// v = variable*2:
//
//	s  -> phi & !v -> t
//	s  -> phi &  v -> t'
//	s' -> phi & !v -> t
//	s' -> phi &  v -> t'
//
// Initial and accepting sets are duplicated onto the twin states. This
// never shrinks the automaton -- callers that want a smaller
// representation need a minimization pass, which this package does not
// provide (spec.md's open question on this point).
func (a *BuchiAutomata) Partition(variable int) *BuchiAutomata {
	v := a.Manager.IthVar(variable * 2)
	notV := v.Not()

	numStates := a.NumState()
	res := New(a.Manager, a.Symbols)
	res.extendTo(2*numStates - 1)

	for _, s := range a.AcceptingStates {
		res.AddAcceptingState(s)
		res.AddAcceptingState(s + numStates)
	}
	for _, s := range a.InitStates {
		res.AddInitState(s)
		res.AddInitState(s + numStates)
	}

	for i := 0; i < numStates; i++ {
		for _, e := range a.Forward[i] {
			lowLabel := e.Label.And(notV)
			highLabel := e.Label.And(v)
			res.AddEdge(i, e.To, lowLabel)
			res.AddEdge(i+numStates, e.To, lowLabel)
			res.AddEdge(i, e.To+numStates, highLabel)
			res.AddEdge(i+numStates, e.To+numStates, highLabel)
		}
	}
	return res
}
