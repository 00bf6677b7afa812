package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pool runs one batch of tasks to completion on a fixed set of workers,
// retrying failed tasks with capped exponential backoff. Unlike a
// long-running scheduler it drains once and stops; cancellation of the run
// context stops retries but lets in-flight tasks finish their partial work.
type Pool struct {
	workerCount int
	queue       chan TaskInterface
	workerWG    sync.WaitGroup
	taskWG      sync.WaitGroup
}

func NewPool(workerCount, queueSize int) *Pool {
	return &Pool{
		workerCount: workerCount,
		queue:       make(chan TaskInterface, queueSize),
	}
}

// Run executes all tasks and blocks until every task has either succeeded
// or exhausted its retries. The queue must be sized for the batch; Run is
// one-shot and must not be called twice on the same pool.
func (p *Pool) Run(ctx context.Context, tasks []TaskInterface) {
	for i := 0; i < p.workerCount; i++ {
		p.workerWG.Add(1)
		go p.worker(ctx, i)
	}

	for _, task := range tasks {
		p.taskWG.Add(1)
		p.queue <- task
	}

	p.taskWG.Wait()
	close(p.queue)
	p.workerWG.Wait()
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.workerWG.Done()

	for task := range p.queue {
		p.executeTask(ctx, id, task)
	}
}

func (p *Pool) executeTask(ctx context.Context, workerID int, task TaskInterface) {
	err := task.Execute(ctx)
	if err == nil {
		p.taskWG.Done()
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID,
		"type", string(task.GetType()), "id", task.GetID(),
		"retry_count", task.GetRetryCount(), "error", err)

	if ctx.Err() != nil || !task.CanRetry() {
		slog.Error("Task failed permanently", "type", string(task.GetType()),
			"source", task.GetSourceName(), "retry_count", task.GetRetryCount(),
			"max_retries", task.GetMaxRetries(), "last_error", err)
		p.taskWG.Done()
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled", "type", string(task.GetType()),
		"source", task.GetSourceName(), "retry_count", task.GetRetryCount(),
		"max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	// The task keeps its taskWG slot until it reaches a terminal state, so
	// Run cannot close the queue underneath a pending retry.
	go func() {
		select {
		case <-ctx.Done():
			slog.Debug("Run cancelled, skipping task retry",
				"type", string(task.GetType()), "id", task.GetID())
			p.taskWG.Done()
		case <-time.After(retryDelay):
			p.queue <- task
		}
	}()
}
