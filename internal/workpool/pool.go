// Package workpool provides a bounded-parallelism fork/join pool for BDD
// operations, standing in for the original's Lace/sylvan work-stealing
// runtime (spec.md section 5, "Work-stealing pool supplied by the BDD
// package"). Rather than transliterating Lace's stack-discipline
// fork/join (spawn onto a deque head, sync pops LIFO), this package
// exposes each fork as an explicit Future handle: semantically
// equivalent for a barrier join (every fork is always joined before the
// barrier completes) and a more idiomatic fit for Go generics than a
// hidden per-worker stack.
package workpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many BDD operations may run concurrently, matching the
// `--parallel N` command-line option (spec.md section 4.5).
type Pool struct {
	sem *semaphore.Weighted
	n   int64
}

// New creates a Pool that allows up to parallel concurrent operations.
// parallel <= 0 is treated as 1 (sequential).
func New(parallel int) *Pool {
	if parallel <= 0 {
		parallel = 1
	}
	n := int64(parallel)
	return &Pool{sem: semaphore.NewWeighted(n), n: n}
}

// Parallelism reports the configured concurrency bound.
func (p *Pool) Parallelism() int { return int(p.n) }

// Run executes f on the calling goroutine after acquiring a pool slot,
// blocking until one is free. This is the pool's entry point, analogous
// to lace_run.
func Run[R any](ctx context.Context, p *Pool, f func() R) R {
	_ = p.sem.Acquire(ctx, 1)
	defer p.sem.Release(1)
	return f()
}

// Future is a handle to a forked computation, joined via Sync.
type Future[R any] struct {
	done chan struct{}
	res  R
}

// Spawn forks f onto a new goroutine once a pool slot is available,
// returning a handle to join later via Sync -- analogous to lace_spawn.
func Spawn[R any](ctx context.Context, p *Pool, f func() R) *Future[R] {
	fut := &Future[R]{done: make(chan struct{})}
	go func() {
		_ = p.sem.Acquire(ctx, 1)
		defer p.sem.Release(1)
		fut.res = f()
		close(fut.done)
	}()
	return fut
}

// Sync blocks until fut's computation completes and returns its result,
// analogous to lace_sync.
func (fut *Future[R]) Sync() R {
	<-fut.done
	return fut.res
}

// SyncMulti joins every future in futs, in the order given -- the
// barrier-synchronous fan-out/join primitive every bulk fixpoint step
// uses (spec.md section 4.4.1/4.4.2, analogous to lace_sync_multi).
func SyncMulti[R any](futs []*Future[R]) []R {
	res := make([]R, len(futs))
	for i, fut := range futs {
		res[i] = fut.Sync()
	}
	return res
}
