// Package worker runs batches of self-play games on a pool of goroutines.
package worker

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/selfplay"
)

// WorkItem describes one game to play.
type WorkItem struct {
	Index    int // Position in the batch
	Seed     int64
	MaxPlies int
}

// ProcessResult is the outcome of one work item.
type ProcessResult struct {
	Index     int
	Result    selfplay.Result
	Duplicate bool // final position already reached by another game
	Error     error
}

// ProcessFunc plays a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

// SelfPlay returns a ProcessFunc that plays random games with selfplay.Play.
// When detector is not nil, results whose final position was already seen
// are marked Duplicate.
func SelfPlay(detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{
			Index:  item.Index,
			Result: selfplay.Play(item.Seed, item.MaxPlies),
		}
		if detector != nil {
			res.Duplicate = detector.CheckAndAddHash(res.Result.FinalHash)
		}
		return res
	}
}

// Pool manages a fixed set of workers fed from a buffered channel.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
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

// NewPool creates a pool with the given number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
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

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // drain without playing
		}
		p.resultChan <- p.process(item)
	}
}

// process runs processFunc, turning a panic into an error result so one bad
// game does not take the batch down.
func (p *Pool) process(item WorkItem) (res ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ProcessResult{Index: item.Index, Error: fmt.Errorf("game %d (seed %d): %v", item.Index, item.Seed, r)}
		}
	}()
	return p.processFunc(item)
}

// Submit queues a work item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit queues a work item without blocking.
// Returns false if the buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers skip the items still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run plays items on a started pool, closes it and returns the results
// ordered by Index.
func (p *Pool) Run(items []WorkItem) []ProcessResult {
	go func() {
		for _, item := range items {
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for res := range p.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// Batch builds n work items with consecutive seeds starting at seed.
func Batch(n int, seed int64, maxPlies int) []WorkItem {
	items := make([]WorkItem, n)
	for i := range items {
		items[i] = WorkItem{Index: i, Seed: seed + int64(i), MaxPlies: maxPlies}
	}
	return items
}
