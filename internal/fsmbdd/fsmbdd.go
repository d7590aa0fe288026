package fsmbdd

import "github.com/joeycumines/go-ppsmc/internal/bdd"

// FsmBdd is a symbolic finite-state machine: Init and Invariants are state
// predicates, Trans is the (possibly partitioned) transition relation, and
// Justice holds the fairness constraints (one BDD per constraint, each
// interpreted as "infinitely often true" -- spec.md section 3).
type FsmBdd struct {
	Manager     *bdd.Manager
	Init        bdd.Bdd
	Invariants  bdd.Bdd
	Trans       *Trans
	Justice     []bdd.Bdd
}

// New assembles an FsmBdd, intersecting Invariants into Init so that the
// initial states respect the invariant by construction (trans.rs's
// FsmBdd::new does the same).
func New(m *bdd.Manager, init, invariants bdd.Bdd, trans *Trans, justice []bdd.Bdd) *FsmBdd {
	return &FsmBdd{
		Manager:    m,
		Init:       init.And(invariants),
		Invariants: invariants,
		Trans:      trans,
		Justice:    justice,
	}
}

// PostImage computes the invariant-respecting forward image of state:
// trans.post_image(state & invariants) & invariants, matching
// fsmbdd/src/lib.rs's FsmBdd::post_image. Callers driving their own
// fixpoint loop over a raw Trans (as the property-driven engine does) must
// go through this, not Trans.PostImage directly, or an INVAR clause is
// silently dropped.
func (f *FsmBdd) PostImage(state bdd.Bdd) bdd.Bdd {
	return f.Trans.PostImage(state.And(f.Invariants)).And(f.Invariants)
}

// PreImage computes the invariant-respecting backward image of state,
// matching FsmBdd::pre_image.
func (f *FsmBdd) PreImage(state bdd.Bdd) bdd.Bdd {
	return f.Trans.PreImage(state.And(f.Invariants)).And(f.Invariants)
}

// Product composes two machines: states and transitions conjoin, Justice
// lists concatenate so fairness must hold on each component independently
// (spec.md section 3, "Product composition").
func (f *FsmBdd) Product(other *FsmBdd) *FsmBdd {
	justice := make([]bdd.Bdd, 0, len(f.Justice)+len(other.Justice))
	justice = append(justice, f.Justice...)
	justice = append(justice, other.Justice...)
	return &FsmBdd{
		Manager:    f.Manager,
		Init:       f.Init.And(other.Init),
		Invariants: f.Invariants.And(other.Invariants),
		Trans:      f.Trans.Product(other.Trans),
		Justice:    justice,
	}
}

// ReachableWithConstrain computes the forward-reachable state set starting
// from `from`, restricting every intermediate frontier to `constrain` and
// always to f.Invariants.
func (f *FsmBdd) ReachableWithConstrain(from, constrain bdd.Bdd) bdd.Bdd {
	reached := from.And(f.Invariants).And(constrain)
	frontier := reached
	for {
		next := f.Trans.PostImage(frontier).And(f.Invariants).And(constrain)
		newStates := next.And(reached.Not())
		if newStates.IsConstant(false) {
			return reached
		}
		reached = reached.Or(newStates)
		frontier = newStates
	}
}

// Reachable computes the forward-reachable state set from `from` with no
// extra constraint beyond the invariants.
func (f *FsmBdd) Reachable(from bdd.Bdd) bdd.Bdd {
	return f.ReachableWithConstrain(from, f.Manager.Constant(true))
}

// ReachableFromInit computes the set of states reachable from Init.
func (f *FsmBdd) ReachableFromInit() bdd.Bdd {
	return f.Reachable(f.Init)
}

// FairCycleWithConstrain computes the Emerson-Lei greatest fixpoint of
// states lying on a fair cycle within `constrain`: repeatedly intersect
// with the backward image of states that can reach every justice set,
// until the set stops shrinking (spec.md section 3, "Fair cycle fixpoint").
func (f *FsmBdd) FairCycleWithConstrain(constrain bdd.Bdd) bdd.Bdd {
	z := constrain.And(f.Invariants)
	for {
		y := z
		for _, just := range f.Justice {
			canReachJustAndZ := f.backwardReachConstrained(just.And(z), z)
			y = y.And(canReachJustAndZ)
		}
		if y.Equal(z) {
			return z
		}
		z = y
	}
}

// FairCycle computes the fair-cycle fixpoint with no extra constraint.
func (f *FsmBdd) FairCycle() bdd.Bdd {
	return f.FairCycleWithConstrain(f.Manager.Constant(true))
}

// backwardReachConstrained computes the set of states that can reach
// `target` in one or more steps while staying inside `constrain`, via
// backward fixpoint. A target state is included only if it has such a path
// itself.
func (f *FsmBdd) backwardReachConstrained(target, constrain bdd.Bdd) bdd.Bdd {
	reached := f.Manager.Constant(false)
	frontier := target.And(constrain)
	for {
		next := f.Trans.PreImage(frontier).And(constrain)
		newStates := next.And(reached.Not())
		if newStates.IsConstant(false) {
			return reached
		}
		reached = reached.Or(newStates)
		frontier = newStates
	}
}

// CloneWithNewManager translocates the entire machine into a different
// BDD manager, used when handing an FsmBdd off to an isolated worker
// (spec.md section 5, "Memory discipline").
func (f *FsmBdd) CloneWithNewManager(m *bdd.Manager) *FsmBdd {
	justice := make([]bdd.Bdd, len(f.Justice))
	for i, j := range f.Justice {
		justice[i] = m.Translocate(j)
	}
	return &FsmBdd{
		Manager:    m,
		Init:       m.Translocate(f.Init),
		Invariants: m.Translocate(f.Invariants),
		Trans:      f.Trans.CloneWithNewManager(m),
		Justice:    justice,
	}
}
