package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/okozlov/music-trends/app/collector"
	"github.com/okozlov/music-trends/app/sources"
)

type CollectSourceTask struct {
	Task
	Source    sources.Source
	collector *collector.Collector
	results   *Results
}

func NewCollectSourceTask(src sources.Source, coll *collector.Collector, results *Results) *CollectSourceTask {
	return &CollectSourceTask{
		Task:      NewTask(TaskTypeCollectSource, src.Name),
		Source:    src,
		collector: coll,
		results:   results,
	}
}

func (t *CollectSourceTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	started := time.Now()
	articles, err := t.collector.CollectSource(ctx, t.Source)
	if err != nil {
		return err
	}

	t.results.Add(t.SourceName, articles)

	slog.Info("Task completed",
		"type", "CollectSource",
		"source", t.SourceName,
		"duration", time.Since(started),
		"articles", len(articles))
	return nil
}
