package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool is a bounded worker pool. Do queues a task, Wait blocks until every
// queued task has finished (and, with done=true, refuses further work).
// With a single worker everything runs inline, which keeps one code path for
// the deterministic reference run.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for i := 0; i < numWorkers; i++ {
			pool.wg.Add(1)
			go func() {
				defer pool.wg.Done()
				for {
					f, ok := <-workChan
					if !ok {
						return
					}
					f()
				}
			}()
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Chunks splits [0,total) into at most maxChunks contiguous ranges and runs
// fn(lo, hi) for each on its own goroutine, returning when all are done. It
// deliberately does not share a queue with any Pool: a pool task may call
// Chunks without risking deadlock on its own workers. maxChunks < 1 means
// GOMAXPROCS.
func Chunks(total, maxChunks int, fn func(lo, hi int)) {
	if total <= 0 {
		return
	}

	if maxChunks < 1 {
		maxChunks = runtime.GOMAXPROCS(0)
	}
	if maxChunks > total {
		maxChunks = total
	}
	if maxChunks == 1 {
		fn(0, total)
		return
	}

	size := total / maxChunks
	rem := total % maxChunks

	var wg sync.WaitGroup
	lo := 0
	for i := 0; i < maxChunks; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		start, end := lo, hi
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
		lo = hi
	}
	wg.Wait()
}
