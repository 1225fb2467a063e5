package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines that process tasks
// from a task queue. The pool bounds the concurrency of background
// generation regardless of how many answers arrive.
type WorkerPool struct {
	taskQueue   TaskQueueReader
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger

	// errorHandler is called when a task execution fails. If nil, errors
	// are only logged.
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool.
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
func NewWorkerPool(taskQueue TaskQueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With("component", "worker_pool"),
	}
}

// SetErrorHandler sets a custom error handler for task execution failures.
// Must be called before Start.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines. Each worker consumes tasks from the
// queue until the queue channel is closed and drained, or the pool is
// stopped.
func (p *WorkerPool) Start() {
	p.logger.Info("starting worker pool", "worker_count", p.workerCount)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop signals all workers to finish and waits for them to exit. Tasks
// already executing run to completion; their contexts are cancelled so
// blocking operations unwind promptly.
func (p *WorkerPool) Stop() {
	p.logger.Info("stopping worker pool")
	p.cancel()
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

// worker is the main loop of a single worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.With("worker_id", id)
	log.Debug("worker started")

	for {
		select {
		case <-p.ctx.Done():
			log.Debug("worker shutting down", "reason", p.ctx.Err())
			return
		case t, ok := <-p.taskQueue.GetChannel():
			if !ok {
				log.Debug("task queue closed, worker exiting")
				return
			}
			p.runTask(log, t)
		}
	}
}

// runTask executes a single task and recovers from panics so one bad task
// cannot take out the worker.
func (p *WorkerPool) runTask(log *slog.Logger, t Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"panic", r)
		}
	}()

	log.Debug("executing task", "task_id", t.ID(), "task_type", t.Type())

	if err := t.Execute(p.ctx); err != nil {
		log.Error("task execution failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		if p.errorHandler != nil {
			p.errorHandler(t, err)
		}
		return
	}

	log.Debug("task completed", "task_id", t.ID(), "task_type", t.Type())
}
