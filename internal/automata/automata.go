// Package automata implements the explicit-state Büchi automaton
// representation used by the property-driven engine, plus the symbolic
// encoding consumed by the traditional baseline.
package automata

import (
	"strconv"

	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// BuchiAutomata is the explicit-state form: a list of forward/backward edge
// lists, each edge labeled with a BDD over the FSM's symbol variables, plus
// the accepting and initial state sets (spec.md section 4.3).
type BuchiAutomata struct {
	Manager         *bdd.Manager
	Symbols         map[string]int
	Forward         [][]Edge
	Backward        [][]Edge
	AcceptingStates []int
	InitStates      []int
}

// Edge is a single labeled transition to state To.
type Edge struct {
	To    int
	Label bdd.Bdd
}

// New constructs an empty automaton over the given manager and symbol
// table (name -> present-state variable index, inherited from the FSM).
func New(m *bdd.Manager, symbols map[string]int) *BuchiAutomata {
	return &BuchiAutomata{
		Manager: m,
		Symbols: symbols,
	}
}

// NumState returns the number of states allocated so far.
func (a *BuchiAutomata) NumState() int { return len(a.Forward) }

func (a *BuchiAutomata) extendTo(to int) {
	for len(a.Forward) <= to {
		a.Forward = append(a.Forward, nil)
		a.Backward = append(a.Backward, nil)
	}
}

// AddEdge records a labeled transition from -> to in both the forward and
// backward edge lists.
func (a *BuchiAutomata) AddEdge(from, to int, label bdd.Bdd) {
	a.extendTo(from)
	a.extendTo(to)
	a.Forward[from] = append(a.Forward[from], Edge{To: to, Label: label})
	a.Backward[to] = append(a.Backward[to], Edge{To: from, Label: label})
}

// AddInitState marks state as an initial state.
func (a *BuchiAutomata) AddInitState(state int) {
	a.InitStates = append(a.InitStates, state)
}

// AddAcceptingState marks state as accepting.
func (a *BuchiAutomata) AddAcceptingState(state int) {
	a.AcceptingStates = append(a.AcceptingStates, state)
}

// automataStateEncode builds the BDD cube encoding state id using
// numEncodeVar present-state variables starting at present-var index
// base*2, bit 0 being the lowest variable (spec.md section 4.3).
func automataStateEncode(m *bdd.Manager, base, numEncodeVar, id int) bdd.Bdd {
	res := m.Constant(true)
	for i := 0; i < numEncodeVar; i++ {
		v := m.IthVar((base + i) * 2)
		if id%2 == 0 {
			res = res.And(v.Not())
		} else {
			res = res.And(v)
		}
		id /= 2
	}
	return res
}

// numEncodeVarFor returns ceil(log2(n)) for n >= 1, and 0 for n <= 1.
func numEncodeVarFor(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return bits
}

// ToFsmBdd symbolically encodes the automaton: fresh present/next variable
// pairs named automata0..automataK-1 are allocated after the existing
// symbol table, each state becomes a cube over those variables, and the
// automaton's edge structure becomes a single transition BDD (spec.md
// section 4.3, "Symbolic encoding").
func (a *BuchiAutomata) ToFsmBdd() *fsmbdd.FsmBdd {
	m := a.Manager
	symbols := make(map[string]int, len(a.Symbols))
	for k, v := range a.Symbols {
		symbols[k] = v
	}
	base := len(a.Symbols)
	numEncodeVar := numEncodeVarFor(a.NumState())
	for i := 0; i < numEncodeVar; i++ {
		m.IthVar((base + i) * 2)
		m.IthVar((base+i)*2 + 1)
		symbols[automataVarName(i)] = (base + i) * 2
	}

	init := m.Constant(false)
	for _, s := range a.InitStates {
		init = init.Or(automataStateEncode(m, base, numEncodeVar, s))
	}

	trans := m.Constant(false)
	for state := 0; state < a.NumState(); state++ {
		stateEnc := automataStateEncode(m, base, numEncodeVar, state)
		for _, e := range a.Forward[state] {
			nextEnc := automataStateEncode(m, base, numEncodeVar, e.To).NextState()
			trans = trans.Or(nextEnc.And(e.Label).And(stateEnc))
		}
	}

	fair := m.Constant(false)
	for _, s := range a.AcceptingStates {
		fair = fair.Or(automataStateEncode(m, base, numEncodeVar, s))
	}

	t := fsmbdd.NewTrans(m, []bdd.Bdd{trans}, fsmbdd.Monolithic)
	return fsmbdd.New(m, init, m.Constant(true), t, []bdd.Bdd{fair})
}

func automataVarName(i int) string {
	return "automata" + strconv.Itoa(i)
}
