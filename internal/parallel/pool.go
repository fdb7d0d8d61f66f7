// Package parallel provides concurrency primitives for the wave-pick tools:
// a general worker pool and the rate limiter the improvement log writes
// through.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// WorkerPool manages a pool of goroutines that run submitted tasks, such as
// restart tasks. The Driver does not use it; it runs its own
// goroutine-per-worker loop.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. If maxWorkers is 0 or negative, it defaults to the number of CPU
// cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case task := <-wp.taskChan:
			if task != nil {
				task()
			}
		case <-wp.shutdownChan:
			return
		}
	}
}

// Submit submits a restart task to the pool. If the pool is saturated, this
// call blocks until a worker becomes available or ctx is cancelled.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	// Shutdown closes taskChan, so check for it first: a send on the closed
	// channel would panic.
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown gracefully shuts down the worker pool, waiting for all
// currently executing tasks to complete.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		close(wp.taskChan)
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// RateLimiter throttles how often the improvement log is appended to,
// preventing a burst of early, rapidly-superseded incumbents from
// dominating disk I/O during the opening seconds of a run.
type RateLimiter struct {
	ticker   *time.Ticker
	tokens   chan struct{}
	shutdown chan struct{}
	once     sync.Once
}

// NewRateLimiter creates a rate limiter allowing up to tokensPerSecond
// operations per second.
func NewRateLimiter(tokensPerSecond int) *RateLimiter {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 1000
	}

	interval := time.Second / time.Duration(tokensPerSecond)
	rl := &RateLimiter{
		ticker:   time.NewTicker(interval),
		tokens:   make(chan struct{}, tokensPerSecond),
		shutdown: make(chan struct{}),
	}

	for i := 0; i < tokensPerSecond; i++ {
		rl.tokens <- struct{}{}
	}

	go rl.refillTokens()

	return rl
}

func (rl *RateLimiter) refillTokens() {
	for {
		select {
		case <-rl.ticker.C:
			select {
			case rl.tokens <- struct{}{}:
			default:
			}
		case <-rl.shutdown:
			rl.ticker.Stop()
			return
		}
	}
}

// Wait blocks until a token is available, ctx is cancelled, or the limiter
// is closed.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.shutdown:
		return ErrLimiterShutdown
	}
}

// Close shuts down the rate limiter and releases its resources.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() {
		close(rl.shutdown)
	})
}

// ErrLimiterShutdown is returned when trying to wait on a shutdown limiter.
var ErrLimiterShutdown = fmt.Errorf("rate limiter has been shutdown")
