package engine

import (
	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// TraditionalCheck implements the baseline regression algorithm of spec.md
// section 4.5: symbolically encode the property automaton, form the
// synchronous product with the system FSM, compute forward reachability
// from init, and check the fair-cycle fixpoint for nonemptiness on the
// reached set. Property fails iff the intersection is non-empty.
//
// Whether sysFsm's own justice constraints are cleared before calling (the
// `--ga` flag's effect, SPEC_FULL.md "Traditional algorithm's --ga flag")
// and which LTL formula propertyAutomaton was built from are decisions made
// by the caller; this function only drives the product-and-check.
func TraditionalCheck(sysFsm *fsmbdd.FsmBdd, propertyAutomaton *automata.BuchiAutomata) bool {
	ltlFsm := propertyAutomaton.ToFsmBdd()
	product := sysFsm.Product(ltlFsm)
	forward := product.ReachableFromInit()
	fairCycle := product.FairCycleWithConstrain(forward)
	return fairCycle.And(forward).IsConstant(false)
}
