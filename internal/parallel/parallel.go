// Package parallel schedules pure per-row transform work across a fixed
// pool of workers.
//
// Work is statically partitioned into contiguous row bands before
// execution begins: each band only reads shared source data and writes
// its own disjoint output rows, so no locks are needed and the join is a
// plain barrier. Because every destination row depends only on source
// data, parallel and sequential runs of the same function produce
// bit-identical output.
package parallel

import (
	"runtime"
	"sync"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/pictor-go/pictor"
)

// minParallelRows is the floor below which banding is not worth the
// dispatch overhead and work runs sequentially.
const minParallelRows = 64

var (
	poolOnce sync.Once
	pool     *workerpool.Pool
)

// sharedPool returns the process-wide worker pool, created on first use
// with GOMAXPROCS workers.
func sharedPool() *workerpool.Pool {
	poolOnce.Do(func() {
		n := runtime.GOMAXPROCS(0)
		pool = workerpool.New(n)
		pictor.Logger().Debug("parallel: worker pool created", "workers", n)
	})
	return pool
}

// Rows executes fn over the half-open row ranges of a partition of
// [0, n). When enabled is false, or n is below the parallel floor, fn
// runs once as fn(0, n) on the calling goroutine. Otherwise the rows are
// split into contiguous bands, one per worker, and Rows returns only
// after every band has completed.
//
// workers caps the band count; workers <= 0 means GOMAXPROCS.
func Rows(n int, enabled bool, workers int, fn func(y0, y1 int)) {
	if n <= 0 {
		return
	}
	if !enabled || n < minParallelRows {
		fn(0, n)
		return
	}

	p := sharedPool()
	bands := p.NumWorkers()
	if workers > 0 && workers < bands {
		bands = workers
	}
	if bands > n {
		bands = n
	}
	if bands <= 1 {
		fn(0, n)
		return
	}

	per := (n + bands - 1) / bands
	p.ParallelFor(bands, func(start, end int) {
		for b := start; b < end; b++ {
			y0 := b * per
			y1 := min(y0+per, n)
			if y0 >= y1 {
				continue
			}
			fn(y0, y1)
		}
	})
}
