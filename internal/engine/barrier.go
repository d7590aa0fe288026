package engine

import (
	"context"
	"time"

	"github.com/joeycumines/go-ppsmc/internal/automata"
	"github.com/joeycumines/go-ppsmc/internal/bdd"
	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
	"github.com/joeycumines/go-ppsmc/internal/workpool"
)

// BarrierEngine implements the bulk barrier-synchronous variant of spec.md
// sections 4.4.1/4.4.2, selected by the `--op` command-line flag. Unlike
// Workers' message-driven default, every round is fully synchronized: a
// single coordinator walks automaton edges sequentially, then a pool of
// spawned image computations is joined as one barrier before the next
// round starts.
type BarrierEngine struct {
	automaton *automata.BuchiAutomata
	fsm       *fsmbdd.FsmBdd
	pool      *workpool.Pool
	Statistic *Statistic
}

// NewBarrierEngine builds a BarrierEngine bounding its per-round image
// computations to pool's concurrency.
func NewBarrierEngine(a *automata.BuchiAutomata, fsm *fsmbdd.FsmBdd, pool *workpool.Pool, stat *Statistic) *BarrierEngine {
	return &BarrierEngine{automaton: a, fsm: fsm, pool: pool, Statistic: stat}
}

type reachFrontier struct {
	reach, frontier bdd.Bdd
}

// PostReachable implements spec.md section 4.4.1.
func (e *BarrierEngine) PostReachable(from []bdd.Bdd) []bdd.Bdd {
	n := len(from)
	falseConst := from[0].Manager().Constant(false)
	frontier := append([]bdd.Bdd(nil), from...)
	reach := append([]bdd.Bdd(nil), from...)
	tmpReach := make([]bdd.Bdd, n)
	for i := range tmpReach {
		tmpReach[i] = falseConst
	}

	for {
		start := time.Now()
		tmp := make([]bdd.Bdd, n)
		for i := range tmp {
			tmp[i] = falseConst
		}
		for i := 0; i < n; i++ {
			for _, edge := range e.automaton.Forward[i] {
				u := frontier[i].And(edge.Label).And(tmpReach[edge.To].Not())
				tmp[edge.To] = tmp[edge.To].Or(u)
				tmpReach[edge.To] = tmpReach[edge.To].Or(u)
			}
		}
		allEmpty := true
		for _, t := range tmp {
			if !t.IsConstant(false) {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			return reach
		}
		e.Statistic.PostPropagateTime += time.Since(start)

		start = time.Now()
		futs := make([]*workpool.Future[reachFrontier], n)
		for i := 0; i < n; i++ {
			i := i
			futs[i] = workpool.Spawn(context.Background(), e.pool, func() reachFrontier {
				image := e.fsm.PostImage(tmp[i])
				return reachFrontier{reach: reach[i].Or(image), frontier: image}
			})
		}
		res := workpool.SyncMulti(futs)
		newReach := make([]bdd.Bdd, n)
		newFrontier := make([]bdd.Bdd, n)
		for i, r := range res {
			newReach[i] = r.reach
			newFrontier[i] = r.frontier
		}
		e.Statistic.PostImageTime += time.Since(start)

		reach = newReach
		frontier = newFrontier
	}
}

// PreReachable implements spec.md section 4.4.2, including the old
// implementation's extra seed pre-image pass (SPEC_FULL.md's "old-impl
// sentinel extra pre-image"): frontier is pre-imaged once up front, before
// the first propagate/pre-image round, for parity with lace_pre_reachable.
func (e *BarrierEngine) PreReachable(from, constraint []bdd.Bdd) []bdd.Bdd {
	n := len(from)
	falseConst := from[0].Manager().Constant(false)
	reach := make([]bdd.Bdd, n)
	for i := range reach {
		reach[i] = falseConst
	}

	start := time.Now()
	seedFuts := make([]*workpool.Future[bdd.Bdd], n)
	for i := 0; i < n; i++ {
		i := i
		seedFuts[i] = workpool.Spawn(context.Background(), e.pool, func() bdd.Bdd {
			return e.fsm.PreImage(from[i])
		})
	}
	frontier := workpool.SyncMulti(seedFuts)
	e.Statistic.PreImageTime += time.Since(start)

	for {
		start = time.Now()
		futs := make([]*workpool.Future[reachFrontier], n)
		for i := 0; i < n; i++ {
			i := i
			futs[i] = workpool.Spawn(context.Background(), e.pool, func() reachFrontier {
				r, nf := e.propagateValue(i, reach[i], frontier, constraint[i])
				if !nf.IsConstant(false) {
					nf = e.fsm.PreImage(nf)
				}
				return reachFrontier{reach: r, frontier: nf}
			})
		}
		res := workpool.SyncMulti(futs)
		newReach := make([]bdd.Bdd, n)
		newFrontier := make([]bdd.Bdd, n)
		allEmpty := true
		for i, r := range res {
			newReach[i] = r.reach
			newFrontier[i] = r.frontier
			if !r.frontier.IsConstant(false) {
				allEmpty = false
			}
		}
		e.Statistic.PrePropagateTime += time.Since(start)

		reach = newReach
		if allEmpty {
			return reach
		}
		frontier = newFrontier
	}
}

// propagateValue mirrors the original's Worker::propagate_value: for each
// of i's outgoing (forward) automaton edges (i, φ, j), pull in states[j]∧φ,
// restricted to constraint and to what i has not already reached, folding
// the result into both i's reach and a fresh frontier contribution.
func (e *BarrierEngine) propagateValue(i int, reach bdd.Bdd, states []bdd.Bdd, constraint bdd.Bdd) (bdd.Bdd, bdd.Bdd) {
	newFrontier := reach.Manager().Constant(false)
	for _, edge := range e.automaton.Forward[i] {
		update := states[edge.To].And(edge.Label).And(constraint)
		update = update.And(reach.Not())
		newFrontier = newFrontier.Or(update)
		reach = reach.Or(update)
	}
	return reach, newFrontier
}
