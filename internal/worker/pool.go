// Package worker fans per-game analysis out over a fixed set of goroutines.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/opening-insight-go/internal/processing"
)

// WorkItem is one game of a batch.
type WorkItem struct {
	Input processing.GameInput
	Index int // position in the batch
}

// ProcessResult is the outcome for one game. Exactly one of Analysis and
// Error is set.
type ProcessResult struct {
	Index    int
	GameID   string
	Analysis *processing.GameAnalysis
	Error    error
}

// ProcessFunc analyses one work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc on a fixed number of goroutines. Items are
// submitted on one channel and results arrive, in completion order, on
// another.
type Pool struct {
	workers    int
	bufferSize int
	work       chan WorkItem
	results    chan ProcessResult
	process    ProcessFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
	done       atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the work and result channels. Values
// below 1 are ignored.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool for process. Without options it has one worker and
// a buffer of 10.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		workers:    1,
		bufferSize: 10,
		process:    process,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for item := range p.work {
		if p.stopped.Load() {
			continue // drain
		}
		p.results <- p.process(item)
		p.done.Add(1)
	}
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// Stop makes the workers skip every item not yet started. Submitted items are
// still drained so Close does not block.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission, waits for the workers and then closes Results.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Processed returns how many items have been processed so far.
func (p *Pool) Processed() int {
	return int(p.done.Load())
}

// AnalyzeAll starts the pool, feeds it every input and returns the results
// in input order. When ctx is cancelled the remaining items are skipped and
// ctx.Err() is returned. The pool cannot be reused afterwards.
func (p *Pool) AnalyzeAll(ctx context.Context, inputs []processing.GameInput) ([]ProcessResult, error) {
	results := make([]ProcessResult, len(inputs))
	p.Start()

	go func() {
		defer p.Close()
		for i, in := range inputs {
			if ctx.Err() != nil {
				p.Stop()
				return
			}
			p.Submit(WorkItem{Input: in, Index: i})
		}
	}()

	// Single consumer, so results needs no lock.
	for res := range p.results {
		if ctx.Err() != nil {
			p.Stop()
			continue
		}
		results[res.Index] = res
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
