package engine

import (
	"sync/atomic"

	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// Worker is one coroutine of the message-driven reachability engine, owning
// a single automaton state (spec.md section 4.4, "one worker per automaton
// state"). Per SPEC_FULL.md's REDESIGN FLAGS, a Worker keeps its reach set
// local to its own goroutine and communicates only by sending to peer
// Mailboxes -- there is
// no analogue of the original's `unsafe { Arc::get_mut_unchecked }` per-
// worker aliasing.
type Worker struct {
	ID       int
	Forward  []automata.Edge
	Backward []automata.Edge
	FSM      *fsmbdd.FsmBdd
	Mailbox  *Mailbox
	Peers    []*Mailbox // indexed by automaton state id, including self
	Active   *atomic.Int64
}

// propagate sends data restricted to each edge's label to the
// corresponding neighbour, incrementing Active once per nonempty send
// (spec.md section 4.4.3, "send Data(...) with active.fetch_add(1)").
func (w *Worker) propagate(edges []automata.Edge, data bdd.Bdd) {
	if data.IsConstant(false) {
		return
	}
	for _, e := range edges {
		msg := data.And(e.Label)
		if msg.IsConstant(false) {
			continue
		}
		w.Active.Add(1)
		w.Peers[e.To].Send(Message{Kind: MsgData, Data: msg})
	}
}

// quit is the terminal action of the Dijkstra-Scholten-style termination
// detector: the worker that drives Active to zero tells every other
// worker to stop.
func (w *Worker) quit() {
	for i, peer := range w.Peers {
		if i != w.ID {
			peer.Send(Message{Kind: MsgQuit})
		}
	}
}

// runForward drives the forward variant of spec.md section 4.4.3 to
// completion and returns the worker's final reach set. The image
// (post_image) is computed by the receiver before a message is folded into
// Reach; the raw seed is propagated unchanged on entry.
func (w *Worker) runForward(seed bdd.Bdd) bdd.Bdd {
	reach := seed
	w.propagate(w.Forward, seed)
	for {
		if w.Active.Add(-1) == 0 {
			w.quit()
			return reach
		}
		msg := w.Mailbox.Recv()
		if msg.Kind == MsgQuit {
			return reach
		}
		update := msg.Data
		var numUpdate int64
		for {
			m, ok := w.Mailbox.TryRecv()
			if !ok {
				break
			}
			if m.Kind != MsgData {
				panic("engine: Quit observed mid-stream while draining a worker mailbox")
			}
			update = update.Or(m.Data)
			numUpdate--
		}
		if !update.IsConstant(false) {
			update = w.FSM.PostImage(update)
			update = update.And(reach.Not())
			reach = reach.Or(update)
			w.propagate(w.Forward, update)
		}
		if numUpdate != 0 {
			w.Active.Add(numUpdate)
		}
	}
}

// runBackward drives the backward variant of spec.md section 4.4.3 to
// completion. Unlike the forward variant, the image (pre_image) is computed
// by the SENDER before a message is ever transmitted, so Reach simply
// accumulates constraint-filtered arrivals; propagation re-derives the
// pre-image of each newly accepted contribution to push further toward
// predecessors. The final reach set is intersected with the original seed
// (`reach & init`), feeding directly into the fair-states fixpoint of
// spec.md section 4.4.4.
func (w *Worker) runBackward(seed, constraint bdd.Bdd) bdd.Bdd {
	reach := seed.Manager().Constant(false)
	if !seed.IsConstant(false) {
		w.propagate(w.Backward, w.FSM.PreImage(seed))
	}
	for {
		if w.Active.Add(-1) == 0 {
			w.quit()
			return reach.And(seed)
		}
		msg := w.Mailbox.Recv()
		if msg.Kind == MsgQuit {
			return reach.And(seed)
		}
		update := msg.Data
		var numUpdate int64
		for {
			m, ok := w.Mailbox.TryRecv()
			if !ok {
				break
			}
			if m.Kind != MsgData {
				panic("engine: Quit observed mid-stream while draining a worker mailbox")
			}
			update = update.Or(m.Data)
			numUpdate--
		}
		update = update.And(constraint).And(reach.Not())
		reach = reach.Or(update)
		if !update.IsConstant(false) {
			w.propagate(w.Backward, w.FSM.PreImage(update))
		}
		if numUpdate != 0 {
			w.Active.Add(numUpdate)
		}
	}
}
