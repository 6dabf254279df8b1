// Package core holds the goroutine plumbing shared by the renderer: a fixed
// worker pool for splitting per-column work and a lock-free counter.
package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted jobs on a fixed set of goroutines.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewWorkerPool creates a pool with numWorkers goroutines; zero or less means
// one per CPU. Call Start before submitting work.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// NewStartedPool creates and starts a pool.
func NewStartedPool(numWorkers int) *WorkerPool {
	pool := NewWorkerPool(numWorkers)
	pool.Start()
	return pool
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
		case <-wp.quit:
			return
		}
	}
}

// Submit queues a job. It blocks while the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Stop shuts the workers down. Jobs still queued are dropped. Safe to call
// more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// NumWorkers returns the number of worker goroutines.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// ParallelFor calls fn for every i in [start, end) and returns when all calls
// have finished. The range is split into one contiguous chunk per worker.
// Concurrent ParallelFor calls on the same pool are allowed.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	_ = wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation checked between
// iterations. It returns ctx.Err() if the loop was cut short.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) error {
	if start >= end {
		return nil
	}

	totalWork := end - start
	chunkSize := max(1, (totalWork+wp.numWorkers-1)/wp.numWorkers)

	var wg sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
			}
		})
	}
	wg.Wait()
	return ctx.Err()
}

// SafeCounter is a lock-free int64 counter.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter returns a counter at zero.
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment adds one and returns the new value.
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}
