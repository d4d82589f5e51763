package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/pkg/jobs"
)

type flakyLoader struct {
	mu       sync.Mutex
	failures int
	loaded   []int64
}

func (l *flakyLoader) ListSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failures > 0 {
		l.failures--
		return nil, errors.New("database busy")
	}
	l.loaded = append(l.loaded, gradeID)
	return nil, nil
}

func (l *flakyLoader) grades() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.loaded...)
}

func TestModuleCacheWarmerRetries(t *testing.T) {
	loader := &flakyLoader{failures: 1}
	w := NewModuleCacheWarmer(loader, jobs.Config{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})
	w.Start(context.Background())
	defer w.Stop()

	w.WarmGrade(5)
	assert.Eventually(t, func() bool { return len(loader.grades()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{5}, loader.grades())
}

func TestModuleCacheWarmerNotStarted(t *testing.T) {
	loader := &flakyLoader{}
	w := NewModuleCacheWarmer(loader, jobs.Config{})
	w.WarmGrade(5)
	assert.Empty(t, loader.grades())
}

type recordingWarmer struct{ grades []int64 }

func (r *recordingWarmer) WarmGrade(gradeID int64) { r.grades = append(r.grades, gradeID) }
