package fsmbdd_test

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
	"github.com/stretchr/testify/require"
)

func iff(a, b bdd.Bdd) bdd.Bdd {
	return a.Xor(b).Not()
}

// counterMachine builds a 2-bit binary counter (p1 p0 as MSB/LSB) that
// wraps from 11 back to 00, with Justice asserting "infinitely often
// p0" -- every reachable state lies on the counter's single free-running
// cycle, which passes through p0 states.
func counterMachine(m *bdd.Manager) *fsmbdd.FsmBdd {
	p0, n0 := m.IthVar(0), m.IthVar(1)
	p1, n1 := m.IthVar(2), m.IthVar(3)

	// n0 = !p0 (LSB always flips)
	t0 := iff(n0, p0.Not())
	// n1 = p1 xor p0 (carries when p0 was set)
	t1 := iff(n1, p1.Xor(p0))

	init := p0.Not().And(p1.Not())
	trans := fsmbdd.NewTrans(m, []bdd.Bdd{t0, t1}, fsmbdd.Monolithic)
	justice := []bdd.Bdd{p0}
	return fsmbdd.New(m, init, m.Constant(true), trans, justice)
}

func litFor(v bdd.Bdd, val bool) bdd.Bdd {
	if val {
		return v
	}
	return v.Not()
}

func TestReachableFromInitCoversAllFourStates(t *testing.T) {
	m := bdd.New()
	fsm := counterMachine(m)

	p0 := m.IthVar(0)
	p1 := m.IthVar(2)
	reached := fsm.ReachableFromInit()

	for _, want := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
		state := litFor(p0, want[0]).And(litFor(p1, want[1]))
		require.False(t, reached.And(state).IsConstant(false), "state %v should be reachable", want)
	}
}

func TestFairCycleIncludesReachableStates(t *testing.T) {
	m := bdd.New()
	fsm := counterMachine(m)
	reached := fsm.ReachableFromInit()
	fair := fsm.FairCycleWithConstrain(reached)
	require.False(t, fair.IsConstant(false))
}

func TestProductConcatenatesJustice(t *testing.T) {
	m := bdd.New()
	fsm1 := counterMachine(m)
	fsm2 := counterMachine(m)
	prod := fsm1.Product(fsm2)
	require.Len(t, prod.Justice, len(fsm1.Justice)+len(fsm2.Justice))
}
