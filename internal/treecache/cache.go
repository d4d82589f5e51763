// Package treecache holds the curriculum → module → lesson tree for one
// workflow view. Modules and lessons live in maps keyed by id; a module's
// lessons are either absent or a complete snapshot.
package treecache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

// Source is the remote side the cache loads from.
type Source interface {
	Curricula(ctx context.Context, gradeID int64) ([]models.Curriculum, error)
	ModuleSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error)
	Module(ctx context.Context, id int64) (*models.Module, error)
	Lessons(ctx context.Context, moduleID int64) ([]models.Lesson, error)
}

var (
	// ErrCurriculumNotCached means the curriculum is not among the loaded curricula.
	ErrCurriculumNotCached = errors.New("curriculum not loaded")
	// ErrGradeMismatch means the curriculum belongs to a different grade.
	ErrGradeMismatch = errors.New("curriculum belongs to another grade")
)

const defaultConcurrency = 8

type moduleRecord struct {
	module        models.Module
	lessons       map[int64]models.Lesson
	lessonsLoaded bool
}

// Cache is the in-memory tree. Writes happen only after confirmed server responses.
type Cache struct {
	source      Source
	logger      *zap.Logger
	concurrency int

	mu        sync.RWMutex
	curricula map[int64]models.Curriculum
	modules   map[int64]*moduleRecord
}

// Option customises a Cache.
type Option func(*Cache)

// WithConcurrency bounds the number of concurrent detail fetches.
func WithConcurrency(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger used for dropped batch items.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs an empty cache.
func New(source Source, opts ...Option) *Cache {
	c := &Cache{
		source:      source,
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
		curricula:   make(map[int64]models.Curriculum),
		modules:     make(map[int64]*moduleRecord),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadCurricula replaces the cached curricula of a grade.
func (c *Cache) LoadCurricula(ctx context.Context, gradeID int64) ([]models.Curriculum, error) {
	curricula, err := c.source.Curricula(ctx, gradeID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for id, existing := range c.curricula {
		if existing.GradeID == gradeID {
			delete(c.curricula, id)
		}
	}
	for _, cur := range curricula {
		c.curricula[cur.ID] = cur
	}
	c.mu.Unlock()

	return c.Curricula(gradeID), nil
}

// LoadModules lists a grade's modules and fetches every detail concurrently.
// A failed detail drops only that module. A failed list fails the load.
func (c *Cache) LoadModules(ctx context.Context, gradeID int64) ([]models.Module, error) {
	summaries, err := c.source.ModuleSummaries(ctx, gradeID)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[models.Module]().WithErrors().WithMaxGoroutines(c.concurrency)
	for _, summary := range summaries {
		id := summary.ID
		p.Go(func() (models.Module, error) {
			module, err := c.source.Module(ctx, id)
			if err != nil {
				c.logger.Warn("module detail dropped", zap.Int64("module_id", id), zap.Error(err))
				return models.Module{}, fmt.Errorf("module %d: %w", id, err)
			}
			if module == nil {
				return models.Module{}, fmt.Errorf("module %d: empty detail", id)
			}
			return *module, nil
		})
	}
	// Errored tasks are excluded from the results; the joined error is only informational.
	details, batchErr := p.Wait()
	if batchErr != nil {
		c.logger.Info("module batch partially loaded",
			zap.Int64("grade_id", gradeID),
			zap.Int("requested", len(summaries)),
			zap.Int("loaded", len(details)),
		)
	}

	c.mu.Lock()
	loaded := make(map[int64]struct{}, len(details))
	for _, module := range details {
		loaded[module.ID] = struct{}{}
		c.putModuleLocked(module)
	}
	for id, rec := range c.modules {
		if _, ok := loaded[id]; !ok && rec.module.GradeID == gradeID {
			delete(c.modules, id)
		}
	}
	c.mu.Unlock()

	if details == nil {
		details = []models.Module{}
	}
	sortModules(details)
	return details, nil
}

// LoadLessons fetches a module's lessons and replaces the cached snapshot.
// Lessons of a module that is not cached are returned but not stored.
func (c *Cache) LoadLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	lessons, err := c.source.Lessons(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if rec, ok := c.modules[moduleID]; ok {
		rec.lessons = make(map[int64]models.Lesson, len(lessons))
		for _, lesson := range lessons {
			rec.lessons[lesson.ID] = lesson
		}
		rec.lessonsLoaded = true
	}
	c.mu.Unlock()

	out := append([]models.Lesson(nil), lessons...)
	sortLessons(out)
	return out, nil
}

// UpsertModule stores confirmed module detail. Loaded lessons survive unless the module carries its own.
func (c *Cache) UpsertModule(module models.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putModuleLocked(module)
}

func (c *Cache) putModuleLocked(module models.Module) {
	lessons := module.Lessons
	module.Lessons = nil

	rec, ok := c.modules[module.ID]
	if !ok {
		rec = &moduleRecord{}
		c.modules[module.ID] = rec
	}
	rec.module = module
	if lessons != nil {
		rec.lessons = make(map[int64]models.Lesson, len(lessons))
		for _, lesson := range lessons {
			rec.lessons[lesson.ID] = lesson
		}
		rec.lessonsLoaded = true
	}
}

// RemoveModule drops a module and its lessons.
func (c *Cache) RemoveModule(moduleID int64) {
	c.mu.Lock()
	delete(c.modules, moduleID)
	c.mu.Unlock()
}

// UpsertLesson stores a confirmed lesson. It is a no-op unless the module's lessons are loaded,
// so a lone lesson never stands in for an unfetched list.
func (c *Cache) UpsertLesson(moduleID int64, lesson models.Lesson) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.modules[moduleID]
	if !ok || !rec.lessonsLoaded {
		return false
	}
	rec.lessons[lesson.ID] = lesson
	return true
}

// ToggleLessonActive flips a cached lesson's active flag.
func (c *Cache) ToggleLessonActive(moduleID, lessonID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.modules[moduleID]
	if !ok {
		return false
	}
	lesson, ok := rec.lessons[lessonID]
	if !ok {
		return false
	}
	lesson.IsActive = !lesson.IsActive
	rec.lessons[lessonID] = lesson
	return true
}

// UpsertCurriculum stores a confirmed curriculum.
func (c *Cache) UpsertCurriculum(curriculum models.Curriculum) {
	c.mu.Lock()
	c.curricula[curriculum.ID] = curriculum
	c.mu.Unlock()
}

// CheckLinkage verifies from cached data alone that curriculumID belongs to gradeID.
func (c *Cache) CheckLinkage(curriculumID, gradeID int64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cur, ok := c.curricula[curriculumID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrCurriculumNotCached, curriculumID)
	}
	if cur.GradeID != gradeID {
		return fmt.Errorf("%w: curriculum %d is grade %d, module is grade %d", ErrGradeMismatch, curriculumID, cur.GradeID, gradeID)
	}
	return nil
}
