package bdd

// Not, And, Or, Xor are the usual Boolean operators, each expressed in
// terms of Ite (bdds::Bdd's trait bound in the original is exactly this
// family: Not/BitAnd/BitOr/BitXor plus Ite/AndAbstract/Image/Support).

func (m *Manager) Not(f Bdd) Bdd {
	return Bdd{mgr: m, n: m.ite(f.n, m.falseN, m.trueN)}
}

func (b Bdd) Not() Bdd { return b.mgr.Not(b) }

func (m *Manager) And(f, g Bdd) Bdd {
	return Bdd{mgr: m, n: m.ite(f.n, g.n, m.falseN)}
}

func (b Bdd) And(other Bdd) Bdd { return b.mgr.And(b, other) }

func (m *Manager) Or(f, g Bdd) Bdd {
	return Bdd{mgr: m, n: m.ite(f.n, m.trueN, g.n)}
}

func (b Bdd) Or(other Bdd) Bdd { return b.mgr.Or(b, other) }

func (m *Manager) Xor(f, g Bdd) Bdd {
	return Bdd{mgr: m, n: m.ite(f.n, m.ite(g.n, m.falseN, m.trueN), g.n)}
}

func (b Bdd) Xor(other Bdd) Bdd { return b.mgr.Xor(b, other) }

// IsConstant reports whether a Bdd is the constant denoting val.
func (b Bdd) IsConstant(val bool) bool {
	return b.n.isTerminal() && b.n.value == val
}

// Equal is structural (pointer) equality, the hash-consing invariant: any
// two BDDs that denote the same Boolean function are equal.
func (b Bdd) Equal(other Bdd) bool {
	return b.mgr == other.mgr && b.n == other.n
}

// Size returns the BDD's node count (non-negative, per the data-model
// invariant), counting each reachable non-terminal node once.
func (b Bdd) Size() int {
	seen := make(map[*node]struct{})
	var walk func(n *node)
	walk = func(n *node) {
		if n.isTerminal() {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		walk(n.low)
		walk(n.high)
	}
	walk(b.n)
	return len(seen)
}

// Exists existentially quantifies f over every variable in vars. Vars that
// f does not depend on are a no-op, making this safe to call with a
// superset of the true support.
func (m *Manager) Exists(f Bdd, vars []int) Bdd {
	return Bdd{mgr: m, n: m.existsSet(f.n, sortedCopy(vars))}
}

func (b Bdd) Exists(vars []int) Bdd { return b.mgr.Exists(b, vars) }

func (m *Manager) existsSet(f *node, vars []int) *node {
	if f.isTerminal() || len(vars) == 0 {
		return f
	}
	key := existsKey{f: f, set: varSetKey(vars)}
	m.mu.Lock()
	if n, ok := m.existsCache[key]; ok {
		m.mu.Unlock()
		return n
	}
	m.mu.Unlock()

	res := m.existsRec(f, vars)

	m.mu.Lock()
	m.existsCache[key] = res
	m.mu.Unlock()
	return res
}

// existsRec is the recursive workhorse behind Exists: standard "abstract"
// traversal, descending on whichever is smaller between f's own top
// variable and the next variable to quantify.
func (m *Manager) existsRec(f *node, vars []int) *node {
	if f.isTerminal() {
		return f
	}
	// drop quantified vars that sit strictly above f's current top: they
	// cannot appear below a smaller index in a properly ordered diagram's
	// *this* subtree, but may still matter for sibling subtrees, so we
	// just filter the slice passed down rather than discard permanently.
	remaining := vars
	for len(remaining) > 0 && remaining[0] < f.variable {
		remaining = remaining[1:]
	}
	if len(remaining) == 0 {
		return f
	}
	lo := m.existsSet(f.low, remaining)
	hi := m.existsSet(f.high, remaining)
	if remaining[0] == f.variable {
		return m.ite(lo, m.trueN, hi)
	}
	m.mu.Lock()
	res := m.mkLocked(f.variable, lo, hi)
	m.mu.Unlock()
	return res
}

// AndAbstract computes Exists(vars, f AND g) -- existentially quantify the
// conjunction of f and g over vars in one call. This is the abstraction
// every partitioned image step (Trans.PreImage/PostImage) is built from.
func (m *Manager) AndAbstract(f, g Bdd, vars []int) Bdd {
	conj := m.And(f, g)
	return m.Exists(conj, vars)
}

func (b Bdd) AndAbstract(g Bdd, vars []int) Bdd {
	return b.mgr.AndAbstract(b, g, vars)
}

// IfThenElse constructs the if-then-else combinator as a Bdd method, matching the
// original's Bdd::if_then_else.
func (b Bdd) IfThenElse(then, els Bdd) Bdd { return b.Ite(then, els) }
