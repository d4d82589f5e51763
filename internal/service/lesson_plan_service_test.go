package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/internal/repository"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

type stubPlanRepo struct {
	items      map[int64]*models.LessonPlan
	lastFilter models.LessonPlanFilter
	statusErr  error
}

func (s *stubPlanRepo) List(ctx context.Context, filter models.LessonPlanFilter) ([]models.LessonPlan, int, error) {
	s.lastFilter = filter
	var out []models.LessonPlan
	for _, p := range s.items {
		if filter.TeacherID == "" || p.TeacherID == filter.TeacherID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (s *stubPlanRepo) FindByID(ctx context.Context, id int64) (*models.LessonPlan, error) {
	if p, ok := s.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubPlanRepo) Create(ctx context.Context, plan *models.LessonPlan) error {
	plan.ID = int64(len(s.items) + 1)
	plan.Status = models.PlanStatusDraft
	cp := *plan
	s.items[plan.ID] = &cp
	return nil
}

func (s *stubPlanRepo) UpdateContent(ctx context.Context, plan *models.LessonPlan) error {
	cp := *plan
	s.items[plan.ID] = &cp
	return nil
}

func (s *stubPlanRepo) UpdateStatus(ctx context.Context, params repository.UpdateStatusParams) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	p := s.items[params.ID]
	if p == nil || p.Status != params.From {
		return sql.ErrNoRows
	}
	p.Status = params.To
	p.DisapprovedReason = params.Reason
	return nil
}

func (s *stubPlanRepo) Delete(ctx context.Context, id int64) error {
	if p, ok := s.items[id]; !ok || p.Status != models.PlanStatusRejected {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

type stubModuleLookup map[int64]models.Module

func (s stubModuleLookup) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	if m, ok := s[id]; ok {
		return &m, nil
	}
	return nil, sql.ErrNoRows
}

var (
	teacherA = Principal{UserID: "t-a", Role: models.RoleTeacher}
	teacherB = Principal{UserID: "t-b", Role: models.RoleTeacher}
	manager  = Principal{UserID: "m-1", Role: models.RoleManager}
)

func newPlanFixture() (*LessonPlanService, *stubPlanRepo, *MetricsService) {
	repo := &stubPlanRepo{items: map[int64]*models.LessonPlan{
		1: {ID: 1, TeacherID: "t-a", GradeID: 5, ModuleID: 1, Title: "Counting", Status: models.PlanStatusDraft},
		2: {ID: 2, TeacherID: "t-a", GradeID: 5, ModuleID: 1, Title: "Adding", Status: models.PlanStatusPending},
		3: {ID: 3, TeacherID: "t-b", GradeID: 5, ModuleID: 1, Title: "Shapes", Status: models.PlanStatusRejected},
	}}
	metrics := NewMetricsService()
	svc := NewLessonPlanService(repo, stubModuleLookup{1: {ID: 1, GradeID: 5}}, metrics, nil, nil)
	return svc, repo, metrics
}

func TestLessonPlanServiceListScopesTeachers(t *testing.T) {
	svc, repo, _ := newPlanFixture()
	ctx := context.Background()

	page, err := svc.List(ctx, teacherA, dto.LessonPlanQuery{UserID: "t-b", PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, "t-a", repo.lastFilter.TeacherID)
	assert.Equal(t, 10, repo.lastFilter.PageSize)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalRecords)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.List(ctx, manager, dto.LessonPlanQuery{Status: 2})
	require.NoError(t, err)
	assert.Equal(t, "", repo.lastFilter.TeacherID)
	assert.Equal(t, models.PlanStatusPending, repo.lastFilter.Status)
	assert.Equal(t, 3, page.TotalRecords)

	_, err = svc.List(ctx, manager, dto.LessonPlanQuery{Status: 9})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLessonPlanServiceGetForbidsOtherTeachers(t *testing.T) {
	svc, _, _ := newPlanFixture()
	_, err := svc.Get(context.Background(), teacherB, 1)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	plan, err := svc.Get(context.Background(), manager, 1)
	require.NoError(t, err)
	assert.Equal(t, "Counting", plan.Title)

	_, err = svc.Get(context.Background(), manager, 99)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestLessonPlanServiceCreateAndEditRoundTrip(t *testing.T) {
	svc, _, _ := newPlanFixture()
	ctx := context.Background()
	content := models.PlanContent{Title: "Fractions", Goal: "halves", Practice: "fold paper"}

	plan, err := svc.Create(ctx, teacherA, dto.CreateLessonPlanRequest{GradeID: 5, ModuleID: 1, PlanContent: content})
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusDraft, plan.Status)
	assert.Equal(t, "t-a", plan.TeacherID)

	edited := content
	edited.Apply = "cut pizza"
	_, err = svc.UpdateContent(ctx, teacherA, plan.ID, edited)
	require.NoError(t, err)

	reloaded, err := svc.Get(ctx, teacherA, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, reloaded.Content())
	assert.Equal(t, models.PlanStatusDraft, reloaded.Status)

	_, err = svc.Create(ctx, manager, dto.CreateLessonPlanRequest{GradeID: 5, ModuleID: 1, PlanContent: content})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Create(ctx, teacherA, dto.CreateLessonPlanRequest{GradeID: 6, ModuleID: 1, PlanContent: content})
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)
}

func TestLessonPlanServiceEditRequiresDraft(t *testing.T) {
	svc, _, _ := newPlanFixture()
	_, err := svc.UpdateContent(context.Background(), teacherA, 2, models.PlanContent{Title: "x"})
	assert.ErrorIs(t, err, appErrors.ErrIllegalTransition)
}

func TestLessonPlanServiceTransitions(t *testing.T) {
	svc, repo, metrics := newPlanFixture()
	ctx := context.Background()

	require.NoError(t, svc.Transition(ctx, teacherA, 1, lifecycle.ActionSubmit, ""))
	assert.Equal(t, models.PlanStatusPending, repo.items[1].Status)

	err := svc.Transition(ctx, manager, 1, lifecycle.ActionReject, "   ")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, models.PlanStatusPending, repo.items[1].Status)

	require.NoError(t, svc.Transition(ctx, manager, 1, lifecycle.ActionReject, " needs objectives "))
	require.NotNil(t, repo.items[1].DisapprovedReason)
	assert.Equal(t, "needs objectives", *repo.items[1].DisapprovedReason)

	require.NoError(t, svc.Transition(ctx, teacherA, 1, lifecycle.ActionReturnToDraft, ""))
	assert.Equal(t, models.PlanStatusDraft, repo.items[1].Status)
	require.NotNil(t, repo.items[1].DisapprovedReason)

	require.NoError(t, svc.Transition(ctx, manager, 2, lifecycle.ActionApprove, ""))
	assert.Equal(t, models.PlanStatusApproved, repo.items[2].Status)
	assert.Nil(t, repo.items[2].DisapprovedReason)

	err = svc.Transition(ctx, teacherA, 2, lifecycle.ActionReturnToDraft, "")
	assert.ErrorIs(t, err, appErrors.ErrIllegalTransition)

	err = svc.Transition(ctx, teacherA, 1, lifecycle.ActionApprove, "")
	assert.ErrorIs(t, err, appErrors.ErrIllegalTransition)

	assert.Equal(t, float64(1), transitionCount(t, metrics, "reject", "applied"))
	assert.Equal(t, float64(1), transitionCount(t, metrics, "reject", "rejected"))
}

func TestLessonPlanServiceWrongActor(t *testing.T) {
	svc, _, _ := newPlanFixture()
	err := svc.Transition(context.Background(), manager, 1, lifecycle.ActionSubmit, "")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestLessonPlanServiceDeleteOnlyRejected(t *testing.T) {
	svc, repo, _ := newPlanFixture()
	ctx := context.Background()

	err := svc.Transition(ctx, teacherA, 1, lifecycle.ActionDelete, "")
	assert.ErrorIs(t, err, appErrors.ErrIllegalTransition)

	require.NoError(t, svc.Transition(ctx, teacherB, 3, lifecycle.ActionDelete, ""))
	_, ok := repo.items[3]
	assert.False(t, ok)
}

func TestLessonPlanServiceConcurrentChangeIsConflict(t *testing.T) {
	svc, repo, _ := newPlanFixture()
	repo.statusErr = sql.ErrNoRows
	err := svc.Transition(context.Background(), teacherA, 1, lifecycle.ActionSubmit, "")
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func transitionCount(t *testing.T, metrics *MetricsService, action, outcome string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "lesson_plan_transitions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["action"] == action && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
