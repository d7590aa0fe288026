package bdd

import "strconv"

// Support returns the BDD cube of variables f actually depends on.
func (m *Manager) Support(f Bdd) Bdd {
	idx := m.supportIndex(f.n)
	res := m.trueN
	// build bottom-up from the largest index so the smallest variable ends
	// up on top, keeping the cube ordered.
	for i := len(idx) - 1; i >= 0; i-- {
		v := idx[i]
		m.mu.Lock()
		res = m.mkLocked(v, m.falseN, res)
		m.mu.Unlock()
	}
	return Bdd{mgr: m, n: res}
}

func (b Bdd) Support() Bdd { return b.mgr.Support(b) }

// SupportIndex returns the sorted list of variable indices f depends on.
func (m *Manager) SupportIndex(f Bdd) []int {
	return m.supportIndex(f.n)
}

func (b Bdd) SupportIndex() []int { return b.mgr.supportIndex(b.n) }

func (m *Manager) supportIndex(f *node) []int {
	seen := make(map[*node]struct{})
	found := make(map[int]struct{})
	var walk func(n *node)
	walk = func(n *node) {
		if n.isTerminal() {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		found[n.variable] = struct{}{}
		walk(n.low)
		walk(n.high)
	}
	walk(f)
	res := make([]int, 0, len(found))
	for v := range found {
		res = append(res, v)
	}
	return sortedCopy(res)
}

// varSetKey canonicalizes a (pre-sorted) variable slice into a cache key.
func varSetKey(vars []int) string {
	// a simple, allocation-light encoding; vars are small non-negative
	// ints so decimal digits with a separator are unambiguous.
	buf := make([]byte, 0, len(vars)*4)
	for i, v := range vars {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return string(buf)
}
