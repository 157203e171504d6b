// Package worker provides a worker pool for searching independent root
// moves in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessai-go/internal/engine"
)

// WorkItem is one root move to search on its parent board.
type WorkItem struct {
	Board *engine.Board // Position before the move
	Move  engine.Move
	Index int // Generation index, used for deterministic tie-breaks
}

// ProcessResult is the outcome of searching one root move.
type ProcessResult struct {
	Index int
	Move  engine.Move
	Score int   // Positive favours White
	Nodes int64 // Positions visited below this move
	Err   error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers. Boards are immutable, so workers share
// them without locking.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool // Early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 32.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  32,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Run starts the pool, processes every item and returns the results
// indexed by WorkItem.Index. Cancelling ctx stops the pool; items not yet
// processed are missing from the result (their slot has a zero Move and
// ctx.Err() as Err). The pool cannot be reused afterwards.
func (p *Pool) Run(ctx context.Context, items []WorkItem) []ProcessResult {
	results := make([]ProcessResult, len(items))
	done := make([]bool, len(items))

	p.Start()
	go func() {
		defer p.Close()
		for _, item := range items {
			if ctx.Err() != nil {
				p.Stop()
				return
			}
			p.Submit(item)
		}
	}()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-stopWatch:
		}
	}()

	for r := range p.Results() {
		if r.Index >= 0 && r.Index < len(results) {
			results[r.Index] = r
			done[r.Index] = true
		}
	}
	for i := range results {
		if !done[i] {
			results[i] = ProcessResult{Index: i, Err: context.Cause(ctx)}
		}
	}
	return results
}
