package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/internal/repository"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

type lessonPlanRepository interface {
	List(ctx context.Context, filter models.LessonPlanFilter) ([]models.LessonPlan, int, error)
	FindByID(ctx context.Context, id int64) (*models.LessonPlan, error)
	Create(ctx context.Context, plan *models.LessonPlan) error
	UpdateContent(ctx context.Context, plan *models.LessonPlan) error
	UpdateStatus(ctx context.Context, params repository.UpdateStatusParams) error
	Delete(ctx context.Context, id int64) error
}

type moduleLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Module, error)
}

// Principal identifies the caller of a lesson plan operation.
type Principal struct {
	UserID string
	Role   models.UserRole
}

const defaultPlanPageSize = 10

// LessonPlanService runs the lesson plan workflow on the server side.
type LessonPlanService struct {
	repo      lessonPlanRepository
	modules   moduleLookup
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonPlanService constructs a LessonPlanService.
func NewLessonPlanService(repo lessonPlanRepository, modules moduleLookup, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LessonPlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonPlanService{repo: repo, modules: modules, metrics: metrics, validator: validate, logger: logger}
}

// List returns one page of plans. Teachers only ever see their own plans.
func (s *LessonPlanService) List(ctx context.Context, principal Principal, query dto.LessonPlanQuery) (*models.Page[models.LessonPlan], error) {
	filter := models.LessonPlanFilter{
		Status:     models.PlanStatus(query.Status),
		TeacherID:  strings.TrimSpace(query.UserID),
		GradeID:    query.GradeID,
		ModuleID:   query.ModuleID,
		SearchTerm: query.SearchTerm,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if filter.Status != 0 && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown lesson plan status")
	}
	if principal.Role == models.RoleTeacher {
		filter.TeacherID = principal.UserID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = defaultPlanPageSize
	}

	plans, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to list lesson plans")
	}
	if plans == nil {
		plans = []models.LessonPlan{}
	}
	return &models.Page[models.LessonPlan]{
		Items:        plans,
		CurrentPage:  filter.Page,
		TotalPages:   models.TotalPagesFor(total, filter.PageSize),
		TotalRecords: total,
	}, nil
}

// Get returns a plan visible to the principal.
func (s *LessonPlanService) Get(ctx context.Context, principal Principal, id int64) (*models.LessonPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load lesson plan")
	}
	if principal.Role == models.RoleTeacher && plan.TeacherID != principal.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "lesson plan belongs to another teacher")
	}
	return plan, nil
}

// Create starts a Draft plan owned by the calling teacher.
func (s *LessonPlanService) Create(ctx context.Context, principal Principal, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error) {
	if principal.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers author lesson plans")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson plan payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	module, err := s.modules.FindByID(ctx, req.ModuleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "module does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to load module")
	}
	if module.GradeID != req.GradeID {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "module belongs to another grade")
	}

	plan := &models.LessonPlan{
		TeacherID: principal.UserID,
		GradeID:   req.GradeID,
		ModuleID:  req.ModuleID,
		LessonID:  req.LessonID,
	}
	plan.ApplyContent(req.PlanContent)
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to create lesson plan")
	}
	s.logger.Info("lesson plan created", zap.Int64("plan_id", plan.ID), zap.String("teacher_id", plan.TeacherID))
	return plan, nil
}

// UpdateContent edits a Draft plan in place.
func (s *LessonPlanService) UpdateContent(ctx context.Context, principal Principal, id int64, content models.PlanContent) (*models.LessonPlan, error) {
	plan, transition, err := s.prepare(ctx, principal, id, lifecycle.ActionEdit, "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content.Title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	plan.ApplyContent(content)
	if err := s.repo.UpdateContent(ctx, plan); err != nil {
		s.metrics.RecordTransition(string(transition.Action), false)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "lesson plan is no longer a draft")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to update lesson plan")
	}
	s.metrics.RecordTransition(string(transition.Action), true)
	return plan, nil
}

// Transition applies a status action to a plan. Delete removes the plan.
func (s *LessonPlanService) Transition(ctx context.Context, principal Principal, id int64, action lifecycle.Action, reason string) error {
	plan, transition, err := s.prepare(ctx, principal, id, action, reason)
	if err != nil {
		return err
	}

	if action == lifecycle.ActionDelete {
		err = s.repo.Delete(ctx, plan.ID)
	} else {
		err = s.repo.UpdateStatus(ctx, repository.UpdateStatusParams{
			ID:     plan.ID,
			From:   transition.From,
			To:     transition.To,
			Reason: reasonFor(transition, plan.DisapprovedReason),
		})
	}
	if err != nil {
		s.metrics.RecordTransition(string(action), false)
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrConflict, "lesson plan status changed concurrently")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal, "failed to update lesson plan status")
	}

	s.metrics.RecordTransition(string(action), true)
	s.logger.Info("lesson plan transition",
		zap.Int64("plan_id", plan.ID),
		zap.String("action", string(action)),
		zap.Stringer("from", transition.From),
		zap.Stringer("to", transition.To),
		zap.String("actor_id", principal.UserID),
	)
	return nil
}

func (s *LessonPlanService) prepare(ctx context.Context, principal Principal, id int64, action lifecycle.Action, reason string) (*models.LessonPlan, lifecycle.Transition, error) {
	actor, ok := lifecycle.ActorFor(principal.Role)
	if !ok {
		return nil, lifecycle.Transition{}, appErrors.Clone(appErrors.ErrForbidden, "role cannot act on lesson plans")
	}
	plan, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, lifecycle.Transition{}, err
	}
	transition, err := lifecycle.Build(plan.ID, plan.Status, action, actor, reason)
	if err != nil {
		s.metrics.RecordTransition(string(action), false)
		return nil, lifecycle.Transition{}, transitionError(err)
	}
	return plan, transition, nil
}

// reasonFor keeps the stored reason except on reject, which sets it, and approve, which clears it.
func reasonFor(t lifecycle.Transition, current *string) *string {
	switch t.Action {
	case lifecycle.ActionReject:
		reason := t.Reason
		return &reason
	case lifecycle.ActionApprove:
		return nil
	default:
		return current
	}
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrReasonRequired):
		return appErrors.Wrap(err, appErrors.ErrValidation, "rejection reason is required")
	case errors.Is(err, lifecycle.ErrActorNotAllowed):
		return appErrors.Wrap(err, appErrors.ErrForbidden, "action not permitted for this role")
	default:
		return appErrors.Wrap(err, appErrors.ErrIllegalTransition, "transition not allowed from current status")
	}
}
