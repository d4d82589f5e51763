package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/models"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
)

// Grades lists every grade.
func (c *Client) Grades(ctx context.Context) ([]models.Grade, error) {
	var grades []models.Grade
	_, err := c.expect(ctx, call{method: http.MethodGet, route: "/grades", path: "/grades"}, &grades)
	return grades, err
}

// Curricula lists the curricula of a grade.
func (c *Client) Curricula(ctx context.Context, gradeID int64) ([]models.Curriculum, error) {
	var curricula []models.Curriculum
	_, err := c.expect(ctx, call{
		method: http.MethodGet,
		route:  "/grades/{gradeId}/curriculums",
		path:   fmt.Sprintf("/grades/%d/curriculums", gradeID),
	}, &curricula)
	return curricula, err
}

// Curriculum fetches a curriculum with its outline.
func (c *Client) Curriculum(ctx context.Context, id int64) (*models.Curriculum, error) {
	var curriculum models.Curriculum
	if _, err := c.expect(ctx, call{method: http.MethodGet, route: "/curriculums/{id}", path: fmt.Sprintf("/curriculums/%d", id)}, &curriculum); err != nil {
		return nil, err
	}
	return &curriculum, nil
}

// ModuleSummaries lists the module summaries of a grade.
func (c *Client) ModuleSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error) {
	var summaries []models.ModuleSummary
	_, err := c.expect(ctx, call{
		method: http.MethodGet,
		route:  "/grades/{gradeId}/modules",
		path:   fmt.Sprintf("/grades/%d/modules", gradeID),
	}, &summaries)
	return summaries, err
}

// Module fetches module detail.
func (c *Client) Module(ctx context.Context, id int64) (*models.Module, error) {
	var module models.Module
	if _, err := c.expect(ctx, call{method: http.MethodGet, route: "/modules/{moduleId}", path: fmt.Sprintf("/modules/%d", id)}, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// Lessons lists the lessons of a module.
func (c *Client) Lessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	var lessons []models.Lesson
	_, err := c.expect(ctx, call{
		method: http.MethodGet,
		route:  "/modules/{moduleId}/lessons",
		path:   fmt.Sprintf("/modules/%d/lessons", moduleID),
	}, &lessons)
	if lessons == nil && err == nil {
		lessons = []models.Lesson{}
	}
	return lessons, err
}

// CreateModule creates a module; the response carries the stored module.
func (c *Client) CreateModule(ctx context.Context, req dto.ModuleRequest) (*models.Module, error) {
	var module models.Module
	if _, err := c.expect(ctx, call{method: http.MethodPost, route: "/modules", path: "/modules", body: req}, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// UpdateModule rewrites a module. The response may or may not carry the module.
func (c *Client) UpdateModule(ctx context.Context, id int64, req dto.ModuleRequest) (*Response, error) {
	return c.expect(ctx, call{method: http.MethodPut, route: "/modules/{moduleId}", path: fmt.Sprintf("/modules/%d", id), body: req}, nil)
}

// DeleteModule soft-deletes a module. Codes 0 and 31 both mean deleted.
func (c *Client) DeleteModule(ctx context.Context, id int64) (*Response, error) {
	return c.expect(ctx, call{method: http.MethodDelete, route: "/modules/{moduleId}", path: fmt.Sprintf("/modules/%d", id)}, nil,
		appErrors.CodeOK, appErrors.CodeModuleDeleted)
}

// CreateLesson adds a lesson to a module; the response carries the stored lesson.
func (c *Client) CreateLesson(ctx context.Context, moduleID int64, req dto.LessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if _, err := c.expect(ctx, call{
		method: http.MethodPost,
		route:  "/modules/{moduleId}/lessons",
		path:   fmt.Sprintf("/modules/%d/lessons", moduleID),
		body:   req,
	}, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLesson rewrites a lesson. The response may or may not carry the lesson.
func (c *Client) UpdateLesson(ctx context.Context, id int64, req dto.LessonRequest) (*Response, error) {
	return c.expect(ctx, call{method: http.MethodPut, route: "/lessons/{lessonId}", path: fmt.Sprintf("/lessons/%d", id), body: req}, nil)
}

// ToggleLesson flips a lesson's active flag through DELETE. Codes 0 and 22 both mean toggled.
func (c *Client) ToggleLesson(ctx context.Context, id int64) (*Response, error) {
	return c.expect(ctx, call{method: http.MethodDelete, route: "/lessons/{lessonId}", path: fmt.Sprintf("/lessons/%d", id)}, nil,
		appErrors.CodeOK, appErrors.CodeLessonToggled)
}

// PlanQuery is the lesson plan list query.
type PlanQuery struct {
	Status     models.PlanStatus
	UserID     string
	GradeID    int64
	ModuleID   int64
	SearchTerm string
	Page       int
	PageSize   int
}

func (q PlanQuery) values() url.Values {
	v := url.Values{}
	if q.Status != 0 {
		v.Set("Status", strconv.Itoa(int(q.Status)))
	}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.GradeID != 0 {
		v.Set("GradeId", strconv.FormatInt(q.GradeID, 10))
	}
	if q.ModuleID != 0 {
		v.Set("ModuleId", strconv.FormatInt(q.ModuleID, 10))
	}
	if q.SearchTerm != "" {
		v.Set("SearchTerm", q.SearchTerm)
	}
	if q.Page > 0 {
		v.Set("Page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("PageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

// LessonPlans fetches one page of plans.
func (c *Client) LessonPlans(ctx context.Context, q PlanQuery) (*models.Page[models.LessonPlan], error) {
	var page models.Page[models.LessonPlan]
	if _, err := c.expect(ctx, call{method: http.MethodGet, route: "/lesson-plans", path: "/lesson-plans", query: q.values()}, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []models.LessonPlan{}
	}
	return &page, nil
}

// TeacherLessonPlans fetches one page of the configured teacher's plans.
func (c *Client) TeacherLessonPlans(ctx context.Context, q PlanQuery) (*models.Page[models.LessonPlan], error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if c.userID == "" {
		return nil, ErrMissingUserID
	}
	q.UserID = c.userID
	return c.LessonPlans(ctx, q)
}

// LessonPlan fetches plan detail.
func (c *Client) LessonPlan(ctx context.Context, id int64) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if _, err := c.expect(ctx, call{method: http.MethodGet, route: "/lesson-plans/{id}", path: fmt.Sprintf("/lesson-plans/%d", id)}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateLessonPlan starts a Draft.
func (c *Client) CreateLessonPlan(ctx context.Context, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if _, err := c.expect(ctx, call{method: http.MethodPost, route: "/lesson-plans", path: "/lesson-plans", body: req}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateLessonPlan edits a Draft's content.
func (c *Client) UpdateLessonPlan(ctx context.Context, id int64, content models.PlanContent) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if _, err := c.expect(ctx, call{method: http.MethodPut, route: "/lesson-plans/{id}", path: fmt.Sprintf("/lesson-plans/%d", id), body: content}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// The transition calls return the raw envelope; callers judge success themselves.

// SubmitLessonPlan moves a Draft to Pending.
func (c *Client) SubmitLessonPlan(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, call{method: http.MethodPost, route: "/lesson-plans/{id}/pending", path: fmt.Sprintf("/lesson-plans/%d/pending", id)})
}

// ApproveLessonPlan moves a Pending plan to Approved.
func (c *Client) ApproveLessonPlan(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, call{method: http.MethodPut, route: "/lesson-plans/{id}/approve", path: fmt.Sprintf("/lesson-plans/%d/approve", id)})
}

// RejectLessonPlan moves a Pending plan to Rejected with a reason.
func (c *Client) RejectLessonPlan(ctx context.Context, id int64, reason string) (*Response, error) {
	return c.do(ctx, call{
		method: http.MethodPut,
		route:  "/lesson-plans/{id}/reject",
		path:   fmt.Sprintf("/lesson-plans/%d/reject", id),
		body:   dto.RejectLessonPlanRequest{Reason: reason},
	})
}

// ReturnLessonPlanToDraft moves a Rejected plan back to Draft.
func (c *Client) ReturnLessonPlanToDraft(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, call{method: http.MethodPut, route: "/lesson-plans/{id}/draft", path: fmt.Sprintf("/lesson-plans/%d/draft", id)})
}

// DeleteLessonPlan permanently removes a Rejected plan.
func (c *Client) DeleteLessonPlan(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, call{method: http.MethodDelete, route: "/lesson-plans/{id}", path: fmt.Sprintf("/lesson-plans/%d", id)})
}
