// Package engine implements the property-driven concurrent fixpoint engine
// of spec.md section 4.4: one coroutine per automaton state, communicating
// over mailboxes, coordinated by a shared atomic "active" counter using a
// Dijkstra-Scholten-style termination detector.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
)

// Workers holds one Worker per automaton state, each holding every worker's
// mailbox and sharing a single Active counter -- the structure driving both
// PostReachable and PreReachable. The FsmBdd is shared
// (reference discipline) rather than translocated per worker: the Manager
// is already safe for concurrent use from any goroutine (internal/bdd's
// package doc), so spec.md section 4.4's "reference-shared... per manager
// discipline" alternative applies here instead of clone_with_new_manager.
type Workers struct {
	automaton *automata.BuchiAutomata
	fsm       *fsmbdd.FsmBdd
	workers   []*Worker
}

// NewWorkers builds one Worker per automaton state.
func NewWorkers(a *automata.BuchiAutomata, fsm *fsmbdd.FsmBdd) *Workers {
	n := a.NumState()
	mailboxes := make([]*Mailbox, n)
	for i := range mailboxes {
		mailboxes[i] = NewMailbox()
	}
	ws := make([]*Worker, n)
	for i := 0; i < n; i++ {
		ws[i] = &Worker{
			ID:       i,
			Forward:  a.Forward[i],
			Backward: a.Backward[i],
			FSM:      fsm,
			Mailbox:  mailboxes[i],
			Peers:    mailboxes,
		}
	}
	return &Workers{automaton: a, fsm: fsm, workers: ws}
}

// NumState is the number of per-automaton-state workers.
func (w *Workers) NumState() int { return len(w.workers) }

// run spawns one goroutine per worker, each driving body, and collects
// results in worker-id order. Active is initialized to the worker count,
// matching the original's `reset()` driving the shared counter to
// exactly num_state before the round starts.
func (w *Workers) run(body func(*Worker) bdd.Bdd) []bdd.Bdd {
	n := len(w.workers)
	active := &atomic.Int64{}
	active.Store(int64(n))
	for _, worker := range w.workers {
		worker.Active = active
	}

	results := make([]bdd.Bdd, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i, worker := range w.workers {
		i, worker := i, worker
		go func() {
			defer wg.Done()
			results[i] = body(worker)
		}()
	}
	wg.Wait()
	return results
}

// PostReachable runs the forward variant of spec.md section 4.4.3 from per-
// state seeds from, returning the per-state reach sets.
func (w *Workers) PostReachable(from []bdd.Bdd) []bdd.Bdd {
	return w.run(func(worker *Worker) bdd.Bdd {
		return worker.runForward(from[worker.ID])
	})
}

// PreReachable runs the backward variant of spec.md section 4.4.3 from per-
// state seeds from, constrained to constraint, returning the per-state
// reach sets -- the primitive spec.md section 4.4.4's fair-states fixpoint
// calls "parallel_backward_reachable".
func (w *Workers) PreReachable(from, constraint []bdd.Bdd) []bdd.Bdd {
	return w.run(func(worker *Worker) bdd.Bdd {
		return worker.runBackward(from[worker.ID], constraint[worker.ID])
	})
}
