package worker

import (
	"context"
	"sync"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// Job is a unit of background work. Jobs run outside any request, so
// Process receives a fresh context rather than a request-scoped one.
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs jobs on a fixed set of goroutines with a bounded queue.
type Pool struct {
	size int
	jobs chan Job
	done chan struct{}
	wg   sync.WaitGroup
}

func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		size: workers,
		jobs: make(chan Job, queueSize),
		done: make(chan struct{}),
	}
}

// Start launches the workers. Call exactly once.
func (p *Pool) Start() {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			p.process(job)
		case <-p.done:
			return
		}
	}
}

// process isolates one job so neither an error nor a panic takes the
// worker goroutine down with it.
func (p *Pool) process(job Job) {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job, blocking while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobs <- job
}

// Stop signals the workers and waits for them to exit. Jobs still
// sitting in the queue are abandoned.
func (p *Pool) Stop() {
	close(p.done)
	p.wg.Wait()
}
