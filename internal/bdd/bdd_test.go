package bdd_test

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/stretchr/testify/require"
)

func TestConstantsAndVars(t *testing.T) {
	m := bdd.New()
	tt := m.Constant(true)
	ff := m.Constant(false)
	require.True(t, tt.IsConstant(true))
	require.True(t, ff.IsConstant(false))

	v0 := m.IthVar(0)
	require.False(t, v0.IsConstant(true))
	require.Equal(t, []int{0}, v0.SupportIndex())
}

func TestBooleanLaws(t *testing.T) {
	m := bdd.New()
	a := m.IthVar(0)
	b := m.IthVar(2)

	require.True(t, a.And(a.Not()).IsConstant(false))
	require.True(t, a.Or(a.Not()).IsConstant(true))
	require.True(t, a.And(b).Equal(b.And(a)))
	require.True(t, a.Or(b).Equal(b.Or(a)))
	require.True(t, a.Xor(a).IsConstant(false))
	require.True(t, m.Not(m.Not(a)).Equal(a))
}

// TestNextPreviousStateRoundTrip is property P4: next_state(previous_state(phi))
// == phi when phi is over next-state variables only, and symmetrically.
func TestNextPreviousStateRoundTrip(t *testing.T) {
	m := bdd.New()
	n0 := m.IthVar(1) // next-state var for present var 0
	n1 := m.IthVar(3)
	phi := n0.And(n1.Not())

	roundTrip := phi.PreviousState().NextState()
	require.True(t, roundTrip.Equal(phi))

	p0 := m.IthVar(0)
	p1 := m.IthVar(2)
	psi := p0.Or(p1)
	roundTrip2 := psi.NextState().PreviousState()
	require.True(t, roundTrip2.Equal(psi))
}

func TestAndAbstract(t *testing.T) {
	m := bdd.New()
	p0 := m.IthVar(0)
	n0 := m.IthVar(1)
	// trans: n0 <-> !p0 (a single flip-flop latch)
	trans := p0.Not().Xor(n0).Not()
	// from p0=false, post image should be n0=true, i.e. after previous_state(next->present) p0=true
	state := p0.Not()
	img := state.AndAbstract(trans, m.StateVars()).PreviousState()
	require.True(t, img.Equal(p0))
}

func TestSizeNonNegative(t *testing.T) {
	m := bdd.New()
	a := m.IthVar(0)
	b := m.IthVar(2)
	f := a.And(b).Or(a.Not())
	require.GreaterOrEqual(t, f.Size(), 0)
}

func TestTranslocate(t *testing.T) {
	m1 := bdd.New()
	m2 := bdd.New()
	a := m1.IthVar(0)
	b := m1.IthVar(2)
	f := a.And(b)

	g := m2.Translocate(f)
	require.Equal(t, f.SupportIndex(), g.SupportIndex())
	require.Equal(t, f.Size(), g.Size())
}
