// Package parallel runs index-range work in fixed-size contiguous blocks.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the number of items handed to one task.
const DefaultBlockSize = 16

// ForBlocked calls fn once per block of [0, n). Blocks are disjoint and
// contiguous; block b covers [b*blockSize, min((b+1)*blockSize, n)). Blocks
// run on up to workers goroutines in no particular order, and ForBlocked
// returns after every block finished.
//
// With workers <= 1 or a single block, fn runs on the calling goroutine in
// ascending block order. A blockSize below 1 selects DefaultBlockSize, and
// workers == 0 selects GOMAXPROCS.
func ForBlocked(n, blockSize, workers int, fn func(begin, end int)) {
	if n <= 0 {
		return
	}
	if blockSize < 1 {
		blockSize = DefaultBlockSize
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if workers <= 1 || n <= blockSize {
		for begin := 0; begin < n; begin += blockSize {
			fn(begin, min(begin+blockSize, n))
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for begin := 0; begin < n; begin += blockSize {
		end := min(begin+blockSize, n)
		g.Go(func() error {
			fn(begin, end)
			return nil
		})
	}
	_ = g.Wait()
}

// ForEach calls fn for every index of [0, n), grouped into blocks as in
// ForBlocked.
func ForEach(n, blockSize, workers int, fn func(i int)) {
	ForBlocked(n, blockSize, workers, func(begin, end int) {
		for i := begin; i < end; i++ {
			fn(i)
		}
	})
}
