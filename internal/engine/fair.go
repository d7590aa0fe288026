package engine

import "github.com/joeycumines/go-ppsmc/internal/bdd"

// FairStates computes the greatest fixpoint of spec.md section 4.4.4: the
// states within each accepting automaton state that can recur within
// reach forever. Mirrors the original's async_fair_states -- PreReachable
// already intersects each worker's result with its own seed (runBackward's
// "reach & init" fold), so no separate AND step is needed between rounds.
func (w *Workers) FairStates(reach []bdd.Bdd) []bdd.Bdd {
	n := w.NumState()
	falseConst := reach[0].Manager().Constant(false)
	fairStates := make([]bdd.Bdd, n)
	for i := range fairStates {
		fairStates[i] = falseConst
	}
	for _, s := range w.automaton.AcceptingStates {
		fairStates[s] = reach[s]
	}
	for {
		next := w.PreReachable(fairStates, reach)
		if bddSliceEqual(fairStates, next) {
			return fairStates
		}
		fairStates = next
	}
}

func bddSliceEqual(a, b []bdd.Bdd) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
