// Package bdd implements the uniform Boolean-algebra abstraction the rest
// of the model checker is built on: a Manager that owns a hash-consed node
// table, and a Bdd value denoting a reduced, ordered binary decision diagram
// over that table.
//
// There is no third-party ROBDD/hash-consing library anywhere in the
// reference corpus, so this kernel is standard-library only (see
// DESIGN.md). Concurrency discipline mirrors the pack's usual shared-state
// pattern (a mutex-guarded map, as in catrate's categoryData): every
// exported Manager method may be called from any goroutine.
package bdd

import (
	"fmt"
	"sort"
	"sync"
)

// node is a single vertex of the shared BDD forest. The zero value is never
// used directly; terminals are the two sentinel nodes stored on Manager.
type node struct {
	variable   int // -1 for terminals
	value      bool // terminal value, meaningful only when variable == -1
	low, high  *node
}

func (n *node) isTerminal() bool { return n.variable < 0 }

// Bdd is an opaque, hash-consed reference to a Boolean function. Two Bdd
// values denote the same function if and only if they wrap the same node
// pointer (structural/canonical equality), which is the invariant the whole
// engine relies on.
type Bdd struct {
	mgr *Manager
	n   *node
}

// Manager owns one shared node table (the "unique table") and the memo
// caches for the recursive Boolean operators. BDDs from different managers
// must never be combined directly; Translocate rebuilds a Bdd under a
// different Manager.
type Manager struct {
	mu      sync.Mutex
	unique  map[triple]*node
	trueN   *node
	falseN  *node
	vars    map[int]*node // ith_var cache
	numVar  int

	// memo caches for the recursive combinators; keyed by pointer triples,
	// cleared never (BDDs are long-lived for the process lifetime of a
	// single check, which is how the original's Sylvan/CUDD-backed
	// implementation behaves too).
	iteCache    map[iteKey]*node
	existsCache map[existsKey]*node
}

type triple struct {
	variable  int
	low, high *node
}

type iteKey struct{ f, g, h *node }

type existsKey struct {
	f   *node
	set string // canonicalized variable set key, see varSetKey
}

// New constructs a fresh, empty Manager, mirroring BddManager::new() in the
// original abstraction (bdds/src/lib.rs).
func New() *Manager {
	m := &Manager{
		unique:      make(map[triple]*node),
		vars:        make(map[int]*node),
		iteCache:    make(map[iteKey]*node),
		existsCache: make(map[existsKey]*node),
	}
	m.trueN = &node{variable: -1, value: true}
	m.falseN = &node{variable: -1, value: false}
	return m
}

// NewWithCapacity is a hint-taking constructor matching
// BddManager::new_with_capacity; the capacity is advisory only since Go maps
// grow on demand.
func NewWithCapacity(capacity int) *Manager {
	m := New()
	m.unique = make(map[triple]*node, capacity)
	return m
}

// Constant returns the constant-true or constant-false Bdd.
func (m *Manager) Constant(v bool) Bdd {
	if v {
		return Bdd{mgr: m, n: m.trueN}
	}
	return Bdd{mgr: m, n: m.falseN}
}

// IthVar returns the Bdd testing variable i, allocating it (and bumping
// NumVar as needed) on first use.
func (m *Manager) IthVar(i int) Bdd {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Bdd{mgr: m, n: m.ithVarLocked(i)}
}

func (m *Manager) ithVarLocked(i int) *node {
	if n, ok := m.vars[i]; ok {
		return n
	}
	n := m.mkLocked(i, m.trueN, m.falseN)
	m.vars[i] = n
	if i+1 > m.numVar {
		m.numVar = i + 1
	}
	return n
}

// NumVar returns one past the highest variable index ever referenced.
func (m *Manager) NumVar() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.numVar
}

// StateVars returns the present-state variable indices: the even indices
// below NumVar. StateVars and NextStateVars anchor every image operation
// (spec.md section 4.1).
func (m *Manager) StateVars() []int {
	n := m.NumVar()
	res := make([]int, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		res = append(res, i)
	}
	return res
}

// NextStateVars returns the next-state variable indices: the odd indices
// below NumVar.
func (m *Manager) NextStateVars() []int {
	n := m.NumVar()
	res := make([]int, 0, n/2)
	for i := 1; i < n; i += 2 {
		res = append(res, i)
	}
	return res
}

// Equal reports whether two managers are the same logical system; BDDs from
// different managers must never be combined.
func (m *Manager) Equal(other *Manager) bool { return m == other }

// mkLocked is the canonicalizing "make node" primitive: reduces a trivial
// node (low == high) and otherwise hash-conses into the unique table. Callers
// must hold m.mu.
func (m *Manager) mkLocked(variable int, low, high *node) *node {
	if low == high {
		return low
	}
	key := triple{variable: variable, low: low, high: high}
	if n, ok := m.unique[key]; ok {
		return n
	}
	n := &node{variable: variable, low: low, high: high}
	m.unique[key] = n
	return n
}

func (b Bdd) String() string {
	if b.n == nil {
		return "<nil-bdd>"
	}
	if b.n.isTerminal() {
		return fmt.Sprintf("%v", b.n.value)
	}
	return fmt.Sprintf("bdd(var=%d)", b.n.variable)
}

// Manager returns the owning manager, for manager-identity guards before
// combining BDDs from potentially different managers.
func (b Bdd) Manager() *Manager { return b.mgr }

// sortedCopy returns a sorted copy of a variable index slice, used wherever
// a canonical cache key or deterministic iteration order is required.
func sortedCopy(vars []int) []int {
	res := make([]int, len(vars))
	copy(res, vars)
	sort.Ints(res)
	return res
}
