package bdd

// NextState substitutes every present-state (even-indexed) variable with
// its next-state (odd-indexed) partner: v -> v+1. PreviousState is the
// inverse substitution, v -> v-1 for odd v. Together these anchor every
// image operation (spec.md section 3, "Variable layout").
//
// The substitution is implemented generically via renameVars + the
// recursive Ite combinator (ite.go), rather than a naive node relabel:
// relabeling alone is only valid when the new variable index still sorts
// below both children, which is not guaranteed when a diagram's decision
// order interleaves a present variable immediately above its own
// next-state partner. Routing every substituted node through Ite lets the
// universal combinator re-derive the correct ordering regardless.
func (m *Manager) NextState(f Bdd) Bdd {
	return Bdd{mgr: m, n: m.renameVars(f.n, evenToOdd, make(map[*node]*node))}
}

func (b Bdd) NextState() Bdd { return b.mgr.NextState(b) }

func (m *Manager) PreviousState(f Bdd) Bdd {
	return Bdd{mgr: m, n: m.renameVars(f.n, oddToEven, make(map[*node]*node))}
}

func (b Bdd) PreviousState() Bdd { return b.mgr.PreviousState(b) }

func evenToOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}

func oddToEven(v int) int {
	if v%2 == 1 {
		return v - 1
	}
	return v
}

func (m *Manager) renameVars(f *node, sigma func(int) int, memo map[*node]*node) *node {
	if f.isTerminal() {
		return f
	}
	if n, ok := memo[f]; ok {
		return n
	}
	lo := m.renameVars(f.low, sigma, memo)
	hi := m.renameVars(f.high, sigma, memo)
	vf := m.ithVarNode(sigma(f.variable))
	res := m.ite(vf, hi, lo)
	memo[f] = res
	return res
}

func (m *Manager) ithVarNode(i int) *node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ithVarLocked(i)
}

// Translocate structurally rebuilds f under this (different) manager,
// required whenever a BDD crosses a per-worker manager boundary (spec.md
// section 5, "Memory discipline"). Variable indices carry the same meaning
// across managers by convention, so translocation is a straight recursive
// copy through the destination manager's own Ite, which re-interns every
// node in the destination's unique table.
func (m *Manager) Translocate(f Bdd) Bdd {
	if f.mgr == m {
		return f
	}
	memo := make(map[*node]*node)
	return Bdd{mgr: m, n: m.translocate(f.n, memo)}
}

func (m *Manager) translocate(f *node, memo map[*node]*node) *node {
	if f.isTerminal() {
		if f.value {
			return m.trueN
		}
		return m.falseN
	}
	if n, ok := memo[f]; ok {
		return n
	}
	lo := m.translocate(f.low, memo)
	hi := m.translocate(f.high, memo)
	vf := m.ithVarNode(f.variable)
	res := m.ite(vf, hi, lo)
	memo[f] = res
	return res
}
