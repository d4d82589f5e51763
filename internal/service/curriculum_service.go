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

type curriculumRepository interface {
	ListByGrade(ctx context.Context, gradeID int64) ([]models.Curriculum, error)
	FindByID(ctx context.Context, id int64) (*models.Curriculum, error)
	Save(ctx context.Context, curriculum *models.Curriculum) error
}

// CurriculumService manages curricula and their outlines.
type CurriculumService struct {
	repo      curriculumRepository
	grades    gradeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCurriculumService constructs a CurriculumService.
func NewCurriculumService(repo curriculumRepository, grades gradeRepository, validate *validator.Validate, logger *zap.Logger) *CurriculumService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumService{repo: repo, grades: grades, validator: validate, logger: logger}
}

// ListByGrade returns the curricula of a grade without details.
func (s *CurriculumService) ListByGrade(ctx context.Context, gradeID int64) ([]models.Curriculum, error) {
	curricula, err := s.repo.ListByGrade(ctx, gradeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list curriculums")
	}
	return curricula, nil
}

// Get returns a curriculum with its ordered details.
func (s *CurriculumService) Get(ctx context.Context, id int64) (*models.Curriculum, error) {
	curriculum, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curriculum not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load curriculum")
	}
	return curriculum, nil
}

// Create stores a new curriculum.
func (s *CurriculumService) Create(ctx context.Context, req dto.CurriculumRequest) (*models.Curriculum, error) {
	curriculum := &models.Curriculum{}
	if err := s.apply(ctx, curriculum, req); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, curriculum); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to create curriculum")
	}
	s.logger.Info("curriculum created", zap.Int64("curriculum_id", curriculum.ID), zap.Int64("grade_id", curriculum.GradeID))
	return curriculum, nil
}

// Update replaces a curriculum and its outline.
func (s *CurriculumService) Update(ctx context.Context, id int64, req dto.CurriculumRequest) (*models.Curriculum, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, existing, req); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to update curriculum")
	}
	return existing, nil
}

func (s *CurriculumService) apply(ctx context.Context, curriculum *models.Curriculum, req dto.CurriculumRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation, "invalid curriculum payload")
	}
	if s.grades != nil {
		if _, err := s.grades.FindByID(ctx, req.GradeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "grade does not exist")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal, "failed to load grade")
		}
	}

	curriculum.GradeID = req.GradeID
	curriculum.Year = req.Year
	curriculum.Description = strings.TrimSpace(req.Description)
	curriculum.TotalPeriods = req.TotalPeriods
	curriculum.Details = make([]models.CurriculumDetail, 0, len(req.Details))
	for _, d := range req.Details {
		curriculum.Details = append(curriculum.Details, models.CurriculumDetail{
			Topic:      strings.TrimSpace(d.Topic),
			Section:    d.Section,
			SubSection: d.SubSection,
			Content:    d.Content,
			Goal:       d.Goal,
		})
	}
	return nil
}
