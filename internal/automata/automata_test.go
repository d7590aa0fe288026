package automata_test

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/stretchr/testify/require"
)

const neverClaimG_a = `never claim
T0_init:
	if
	:: (a) -> goto accept_all
	:: (1) -> goto T0_init
	fi;
accept_all:
	skip
}`

// neverClaimG_a_spot is the same "G a" automaton as neverClaimG_a, but with
// accept_all's self-loop spelled out as an `if`/`fi;`-wrapped option rather
// than the "skip" shorthand -- genuine `ltl2tgba -s` output uses "skip" only
// for a bare unconditional self-loop and otherwise always brackets options
// in `if ... fi;`, including single-option blocks.
const neverClaimG_a_spot = `never claim
T0_init:
	if
	:: (a) -> goto accept_all
	:: (1) -> goto T0_init
	fi;
accept_all:
	if
	:: (1) -> goto accept_all
	fi;
}`

func TestParseSingleAcceptingSelfLoop(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0}
	a, err := automata.Parse(neverClaimG_a, m, symbols, nil)
	require.NoError(t, err)
	require.Equal(t, 2, a.NumState())
	require.Len(t, a.InitStates, 1)
	require.Len(t, a.AcceptingStates, 1)

	accept := a.AcceptingStates[0]
	init := a.InitStates[0]
	require.NotEqual(t, accept, init)

	// accepting state is a "skip" self-loop under true.
	require.Len(t, a.Forward[accept], 1)
	require.True(t, a.Forward[accept][0].Label.IsConstant(true))
	require.Equal(t, accept, a.Forward[accept][0].To)
}

func TestToFsmBddReachesAcceptingEncoding(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0}
	a, err := automata.Parse(neverClaimG_a, m, symbols, nil)
	require.NoError(t, err)

	fsm := a.ToFsmBdd()
	require.False(t, fsm.Init.IsConstant(false))
	require.Len(t, fsm.Justice, 1)
	require.False(t, fsm.Justice[0].IsConstant(false))

	reached := fsm.ReachableFromInit()
	require.False(t, reached.And(fsm.Justice[0]).IsConstant(false))
}

// TestParseHandlesIfFiWrappedOptions proves Parse accepts genuine
// `ltl2tgba -s` output, where every non-"skip" state body brackets its
// `:: cond -> goto dest` options in `if ... fi;` -- a shape the
// hand-trimmed neverClaimG_a fixture omits.
func TestParseHandlesIfFiWrappedOptions(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0}
	a, err := automata.Parse(neverClaimG_a_spot, m, symbols, nil)
	require.NoError(t, err)
	require.Equal(t, 2, a.NumState())
	require.Len(t, a.InitStates, 1)
	require.Len(t, a.AcceptingStates, 1)

	accept := a.AcceptingStates[0]
	init := a.InitStates[0]
	require.NotEqual(t, accept, init)
	require.Len(t, a.Forward[accept], 1)
	require.True(t, a.Forward[accept][0].Label.IsConstant(true))
	require.Equal(t, accept, a.Forward[accept][0].To)
}

// TestPartitionDoublesStateSpace is spec scenario 6: a 1-state accepting
// Büchi automaton with a true self-loop, split on a variable, yields a
// 2-state automaton.
func TestPartitionDoublesStateSpace(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0}
	a := automata.New(m, symbols)
	a.AddEdge(0, 0, m.Constant(true))
	a.AddInitState(0)
	a.AddAcceptingState(0)

	split := a.Partition(0)
	require.Equal(t, 2, split.NumState())
	require.Len(t, split.InitStates, 2)
	require.Len(t, split.AcceptingStates, 2)

	// every original edge should now split into a !v and a v branch.
	total := 0
	for _, edges := range split.Forward {
		total += len(edges)
	}
	require.Equal(t, 4, total)
}

func TestParseResolvesDefineAtoms(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0}
	atoms := map[string]bdd.Bdd{
		"a":      m.IthVar(0),
		"a_or_b": m.IthVar(0).Or(m.IthVar(2)),
	}
	text := `never claim
T0_init:
	if
	:: (a_or_b) -> goto accept_all
	:: (1) -> goto T0_init
	fi;
accept_all:
	skip
}`
	a, err := automata.Parse(text, m, symbols, atoms)
	require.NoError(t, err)
	require.Equal(t, atoms["a_or_b"], a.Forward[a.InitStates[0]][0].Label)
}

func TestPartitionPreservesSymbols(t *testing.T) {
	m := bdd.New()
	symbols := map[string]int{"a": 0, "b": 2}
	a := automata.New(m, symbols)
	a.AddEdge(0, 1, m.IthVar(0))
	a.AddEdge(1, 0, m.IthVar(2).Not())
	a.AddInitState(0)
	a.AddAcceptingState(1)

	split := a.Partition(1)
	require.Equal(t, symbols["a"], split.Symbols["a"])
	require.Equal(t, symbols["b"], split.Symbols["b"])
}
