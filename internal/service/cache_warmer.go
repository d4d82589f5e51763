package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/pkg/jobs"
)

type moduleListLoader interface {
	ListSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error)
}

// ModuleCacheWarmer reloads a grade's module list in the background after a
// write invalidated it, so the next reader hits the cache.
type ModuleCacheWarmer struct {
	queue  *jobs.Queue[int64]
	logger *zap.Logger
}

// NewModuleCacheWarmer builds a warmer that reloads through loader.
func NewModuleCacheWarmer(loader moduleListLoader, cfg jobs.Config) *ModuleCacheWarmer {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	w := &ModuleCacheWarmer{logger: cfg.Logger}
	w.queue = jobs.New[int64]("module-cache-warm", func(ctx context.Context, job jobs.Job[int64]) error {
		_, err := loader.ListSummaries(ctx, job.Payload)
		return err
	}, cfg)
	return w
}

// Start launches the workers.
func (w *ModuleCacheWarmer) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop waits for the workers to exit.
func (w *ModuleCacheWarmer) Stop() {
	w.queue.Stop()
}

// WarmGrade schedules a reload of the grade's module list. It never blocks.
func (w *ModuleCacheWarmer) WarmGrade(gradeID int64) {
	job := jobs.Job[int64]{Key: fmt.Sprintf("grade:%d", gradeID), Payload: gradeID}
	if err := w.queue.Enqueue(job); err != nil {
		w.logger.Warn("module cache warm skipped", zap.Int64("grade_id", gradeID), zap.Error(err))
	}
}
