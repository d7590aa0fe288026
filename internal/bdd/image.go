package bdd

// PostImage computes the direct (single-relation) forward image through
// trans: post(s,T) = (exists present. s(present) and T(present,next)),
// renamed next->present. Trans.PostImage (fsmbdd package) falls back to
// this whenever the partitioned transition relation has only one part.
func (m *Manager) PostImage(state, trans Bdd) Bdd {
	abstracted := m.AndAbstract(state, trans, m.StateVars())
	return m.PreviousState(abstracted)
}

func (b Bdd) PostImage(trans Bdd) Bdd { return b.mgr.PostImage(b, trans) }

// PreImage computes the direct (single-relation) backward image through
// trans: pre(s,T) = exists next. T(present,next) and s(next-substituted).
func (m *Manager) PreImage(state, trans Bdd) Bdd {
	shifted := m.NextState(state)
	return m.AndAbstract(shifted, trans, m.NextStateVars())
}

func (b Bdd) PreImage(trans Bdd) Bdd { return b.mgr.PreImage(b, trans) }
