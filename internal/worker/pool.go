// Package worker provides a generic worker pool for parallel game processing.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("worker pool stopped")

// Item is a value submitted to the pool.
type Item[T any] struct {
	Value T
	Index int // Original index for tracking
}

// Result is the outcome of processing one item.
type Result[R any] struct {
	Value R
	Index int
	Err   error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc[T, R any] func(item Item[T]) Result[R]

type settings struct {
	numWorkers int
	bufferSize int
}

// Option configures a Pool.
type Option func(*settings)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(s *settings) {
		if size >= 1 {
			s.bufferSize = size
		}
	}
}

// Pool manages a pool of workers for parallel processing.
type Pool[T, R any] struct {
	settings
	workChan    chan Item[T]
	resultChan  chan Result[R]
	processFunc ProcessFunc[T, R]
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// NewPool creates a new worker pool.
// Default: 1 worker, buffer size of 10.
func NewPool[T, R any](processFunc ProcessFunc[T, R], opts ...Option) *Pool[T, R] {
	p := &Pool[T, R]{
		settings:    settings{numWorkers: 1, bufferSize: 10},
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(&p.settings)
	}
	// Create channels after options are applied
	p.workChan = make(chan Item[T], p.bufferSize)
	p.resultChan = make(chan Result[R], p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a work item, blocking while the buffer is full.
// It returns ErrStopped once the pool is stopped and ctx.Err() if ctx
// is done first.
func (p *Pool[T, R]) Submit(ctx context.Context, item Item[T]) error {
	if p.IsStopped() {
		return ErrStopped
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.workChan <- item:
		return nil
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool[T, R]) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool[T, R]) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool[T, R]) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool[T, R]) Results() <-chan Result[R] {
	return p.resultChan
}

// Map runs fn over values on a pool and returns the results in input order.
// Once ctx is done no further items are processed; their results carry ctx.Err().
func Map[T, R any](ctx context.Context, values []T, fn func(T) (R, error), opts ...Option) []Result[R] {
	p := NewPool(func(item Item[T]) Result[R] {
		v, err := fn(item.Value)
		return Result[R]{Value: v, Index: item.Index, Err: err}
	}, opts...)

	stop := context.AfterFunc(ctx, p.Stop)
	defer stop()

	p.Start()
	go func() {
		defer p.Close()
		for i, v := range values {
			if err := p.Submit(ctx, Item[T]{Value: v, Index: i}); err != nil {
				return
			}
		}
	}()

	out := make([]Result[R], len(values))
	done := make([]bool, len(values))
	for r := range p.Results() {
		out[r.Index] = r
		done[r.Index] = true
	}

	for i := range out {
		if !done[i] {
			out[i] = Result[R]{Index: i, Err: ctx.Err()}
		}
	}
	return out
}
