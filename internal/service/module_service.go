package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/models"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

type moduleRepository interface {
	ListSummariesByGrade(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error)
	FindByID(ctx context.Context, id int64) (*models.Module, error)
	Create(ctx context.Context, module *models.Module) error
	Update(ctx context.Context, module *models.Module) error
	SoftDelete(ctx context.Context, id int64) error
}

type lessonRepository interface {
	ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	FindByID(ctx context.Context, id int64) (*models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, lesson *models.Lesson) error
	ToggleActive(ctx context.Context, id int64) (*models.Lesson, error)
}

type gradeWarmer interface {
	WarmGrade(gradeID int64)
}

type curriculumLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Curriculum, error)
}

// ModuleService manages modules and their lessons. Module reads go through the cache.
type ModuleService struct {
	modules   moduleRepository
	lessons   lessonRepository
	curricula curriculumLookup
	cache     *CacheService
	warmer    gradeWarmer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewModuleService constructs a ModuleService. cache may be nil.
func NewModuleService(modules moduleRepository, lessons lessonRepository, curricula curriculumLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService{
		modules:   modules,
		lessons:   lessons,
		curricula: curricula,
		cache:     cache,
		validator: validate,
		logger:    logger,
	}
}

// UseWarmer reloads invalidated grade lists in the background. Only useful with an enabled cache.
func (s *ModuleService) UseWarmer(w gradeWarmer) {
	s.warmer = w
}

func (s *ModuleService) warm(gradeIDs ...int64) {
	if s.warmer == nil || !s.cache.Enabled() {
		return
	}
	seen := make(map[int64]bool, len(gradeIDs))
	for _, id := range gradeIDs {
		if !seen[id] {
			seen[id] = true
			s.warmer.WarmGrade(id)
		}
	}
}

// ListSummaries returns the module list of a grade.
func (s *ModuleService) ListSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error) {
	key := moduleListKey(gradeID)
	var cached []models.ModuleSummary
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := s.modules.ListSummariesByGrade(ctx, gradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list modules")
	}
	if summaries == nil {
		summaries = []models.ModuleSummary{}
	}
	s.cache.Set(ctx, key, summaries)
	return summaries, nil
}

// Get returns module detail without lessons.
func (s *ModuleService) Get(ctx context.Context, id int64) (*models.Module, error) {
	key := moduleKey(id)
	var cached models.Module
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load module")
	}
	s.cache.Set(ctx, key, module)
	return module, nil
}

// Create validates linkage and inserts a module.
func (s *ModuleService) Create(ctx context.Context, req dto.ModuleRequest) (*models.Module, error) {
	if err := s.checkModule(ctx, req); err != nil {
		return nil, err
	}
	module := &models.Module{}
	applyModuleRequest(module, req)
	if err := s.modules.Create(ctx, module); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to create module")
	}
	s.cache.Invalidate(ctx, moduleListKey(module.GradeID))
	s.warm(module.GradeID)
	s.logger.Info("module created", zap.Int64("module_id", module.ID), zap.Int64("grade_id", module.GradeID))
	return module, nil
}

// Update validates linkage and rewrites a module.
func (s *ModuleService) Update(ctx context.Context, id int64, req dto.ModuleRequest) error {
	if err := s.checkModule(ctx, req); err != nil {
		return err
	}
	existing, err := s.modules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to load module")
	}
	previousGrade := existing.GradeID
	applyModuleRequest(existing, req)
	if err := s.modules.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to update module")
	}
	s.cache.Invalidate(ctx, moduleKey(id), moduleListKey(previousGrade), moduleListKey(existing.GradeID))
	s.warm(previousGrade, existing.GradeID)
	return nil
}

// Delete soft-deletes a module.
func (s *ModuleService) Delete(ctx context.Context, id int64) error {
	existing, err := s.modules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to load module")
	}
	if err := s.modules.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to delete module")
	}
	s.cache.Invalidate(ctx, moduleKey(id), moduleListKey(existing.GradeID))
	s.warm(existing.GradeID)
	s.logger.Info("module deleted", zap.Int64("module_id", id))
	return nil
}

// ListLessons returns every lesson of a module, active or not.
func (s *ModuleService) ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	if _, err := s.Get(ctx, moduleID); err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list lessons")
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}

// CreateLesson adds an active lesson to a module.
func (s *ModuleService) CreateLesson(ctx context.Context, moduleID int64, req dto.LessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson payload")
	}
	if _, err := s.Get(ctx, moduleID); err != nil {
		return nil, err
	}
	lesson := &models.Lesson{ModuleID: moduleID, IsActive: true}
	applyLessonRequest(lesson, req)
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to create lesson")
	}
	return lesson, nil
}

// UpdateLesson rewrites a lesson.
func (s *ModuleService) UpdateLesson(ctx context.Context, id int64, req dto.LessonRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson payload")
	}
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to load lesson")
	}
	applyLessonRequest(lesson, req)
	if err := s.lessons.Update(ctx, lesson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to update lesson")
	}
	return nil
}

// ToggleLesson flips a lesson's active flag and returns the stored lesson.
func (s *ModuleService) ToggleLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson, err := s.lessons.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to toggle lesson")
	}
	return lesson, nil
}

// checkModule validates the payload and that the curriculum belongs to the module's grade.
func (s *ModuleService) checkModule(ctx context.Context, req dto.ModuleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation, "invalid module payload")
	}
	curriculum, err := s.curricula.FindByID(ctx, req.CurriculumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "curriculum does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to load curriculum")
	}
	if curriculum.GradeID != req.GradeID {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "curriculum belongs to another grade")
	}
	return nil
}

func applyModuleRequest(module *models.Module, req dto.ModuleRequest) {
	module.CurriculumID = req.CurriculumID
	module.GradeID = req.GradeID
	module.Semester = req.Semester
	module.Name = strings.TrimSpace(req.Name)
	module.Description = strings.TrimSpace(req.Description)
	module.TotalPeriods = req.TotalPeriods
}

func applyLessonRequest(lesson *models.Lesson, req dto.LessonRequest) {
	lesson.Name = strings.TrimSpace(req.Name)
	lesson.LessonTypeID = req.LessonTypeID
	lesson.TotalPeriods = req.TotalPeriods
	lesson.NoteID = req.NoteID
}
