// Package pool provides the bounded-queue worker stages the forward
// pipeline is built from. Submission blocks when a stage's queue is full,
// which is what gives the pipeline its backpressure; draining a stage
// blocks until all submitted work has finished.
package pool

import "sync"

// Pool runs a fixed set of workers over a bounded work queue. The worker
// index passed to fn is stable for the lifetime of the pool, so callers can
// attach per-worker scratch state to it.
type Pool[T any] struct {
	ch chan T
	wg sync.WaitGroup
}

// New starts workers goroutines consuming a queue of the given depth.
// depth bounds the number of queued (not yet started) items; a full queue
// blocks Submit.
func New[T any](workers, depth int, fn func(worker int, item T)) *Pool[T] {
	if workers < 1 {
		workers = 1
	}
	p := &Pool[T]{ch: make(chan T, depth)}
	p.wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer p.wg.Done()
			for item := range p.ch {
				fn(w, item)
			}
		}(w)
	}
	return p
}

// Submit queues one unit of work, blocking while the queue is full.
// Submit must not be called after Drain.
func (p *Pool[T]) Submit(item T) {
	p.ch <- item
}

// Drain closes the queue and blocks until every submitted item has been
// processed. Drain stages in dependency order: a stage must only be
// drained after every stage that submits to it.
func (p *Pool[T]) Drain() {
	close(p.ch)
	p.wg.Wait()
}
