package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs every task in tasks concurrently (bounded by p's
// parallelism), waiting for all to finish and returning the first error
// encountered, if any. A second fork/join entry point alongside
// Spawn/SyncMulti, for callers whose tasks can fail -- image computation
// (BarrierEngine's own barrier join) cannot, so it uses Spawn/SyncMulti
// directly instead.
func RunAll(ctx context.Context, p *Pool, tasks []func() error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer p.sem.Release(1)
			return t()
		})
	}
	return g.Wait()
}
