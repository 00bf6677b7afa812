package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/okozlov/music-trends/app/article"
)

type fakeTask struct {
	Task
	executions  atomic.Int32
	failUntil   int32
	lastFailure error
}

func newFakeTask(source string, maxRetries int, failUntil int32) *fakeTask {
	task := &fakeTask{
		Task:      NewTask(TaskTypeCollectSource, source),
		failUntil: failUntil,
	}
	task.MaxRetries = maxRetries
	return task
}

func (t *fakeTask) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := t.executions.Add(1)
	if n <= t.failUntil {
		t.lastFailure = errors.New("simulated failure")
		return t.lastFailure
	}
	return nil
}

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(3, 10)

	var batch []TaskInterface
	fakes := make([]*fakeTask, 5)
	for i := range fakes {
		fakes[i] = newFakeTask("source", 0, 0)
		batch = append(batch, fakes[i])
	}

	pool.Run(context.Background(), batch)

	for i, task := range fakes {
		if got := task.executions.Load(); got != 1 {
			t.Errorf("task %d executed %d times, want 1", i, got)
		}
	}
}

func TestPoolRetriesFailedTask(t *testing.T) {
	pool := NewPool(1, 10)
	task := newFakeTask("source", 1, 1)

	pool.Run(context.Background(), []TaskInterface{task})

	if got := task.executions.Load(); got != 2 {
		t.Errorf("expected 1 failure + 1 retry = 2 executions, got %d", got)
	}
}

func TestPoolStopsRetryingAfterMax(t *testing.T) {
	pool := NewPool(1, 10)
	task := newFakeTask("source", 1, 100)

	pool.Run(context.Background(), []TaskInterface{task})

	if got := task.executions.Load(); got != 2 {
		t.Errorf("expected MaxRetries+1 = 2 executions, got %d", got)
	}
}

func TestPoolCancelledContextSkipsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(1, 10)
	task := newFakeTask("source", 3, 100)

	pool.Run(ctx, []TaskInterface{task})

	if got := task.executions.Load(); got != 0 {
		t.Errorf("expected no successful executions under cancelled context, got %d", got)
	}
	if task.GetRetryCount() != 0 {
		t.Errorf("cancelled run must not schedule retries, retry count %d", task.GetRetryCount())
	}
}

func TestResultsFlattenFollowsSourceOrder(t *testing.T) {
	results := NewResults()
	results.Add("Second", []article.Article{{URL: "https://b.example/1"}})
	results.Add("First", []article.Article{
		{URL: "https://a.example/1"},
		{URL: "https://a.example/2"},
	})

	flat := results.Flatten([]string{"First", "Second"})
	if len(flat) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(flat))
	}
	want := []string{"https://a.example/1", "https://a.example/2", "https://b.example/1"}
	for i, url := range want {
		if flat[i].URL != url {
			t.Errorf("position %d: got %s, want %s", i, flat[i].URL, url)
		}
	}
}
