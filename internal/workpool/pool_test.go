package workpool_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/workpool"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesAndReturns(t *testing.T) {
	p := workpool.New(2)
	res := workpool.Run(context.Background(), p, func() int { return 21 * 2 })
	require.Equal(t, 42, res)
}

func TestSpawnSyncMultiPreservesOrder(t *testing.T) {
	p := workpool.New(4)
	ctx := context.Background()
	futs := make([]*workpool.Future[int], 8)
	for i := 0; i < 8; i++ {
		i := i
		futs[i] = workpool.Spawn(ctx, p, func() int { return i * i })
	}
	res := workpool.SyncMulti(futs)
	for i, v := range res {
		require.Equal(t, i*i, v)
	}
}

func TestRunAllBoundsConcurrency(t *testing.T) {
	p := workpool.New(2)
	var concurrent int32
	var maxObserved int32
	tasks := make([]func() error, 20)
	for i := range tasks {
		tasks[i] = func() error {
			n := atomic.AddInt32(&concurrent, 1)
			for {
				max := atomic.LoadInt32(&maxObserved)
				if n <= max || atomic.CompareAndSwapInt32(&maxObserved, max, n) {
					break
				}
			}
			atomic.AddInt32(&concurrent, -1)
			return nil
		}
	}
	err := workpool.RunAll(context.Background(), p, tasks)
	require.NoError(t, err)
	require.LessOrEqual(t, maxObserved, int32(2))
}
