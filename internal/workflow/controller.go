// Package workflow drives one lesson plan list view: it turns filter changes
// into list queries, runs status transitions, and keeps the tree cache in
// step with confirmed module and lesson writes.
package workflow

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/apiclient"
	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/listview"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

// API is the part of the REST client the controller calls.
type API interface {
	LessonPlans(ctx context.Context, q apiclient.PlanQuery) (*models.Page[models.LessonPlan], error)
	TeacherLessonPlans(ctx context.Context, q apiclient.PlanQuery) (*models.Page[models.LessonPlan], error)
	LessonPlan(ctx context.Context, id int64) (*models.LessonPlan, error)
	CreateLessonPlan(ctx context.Context, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error)
	UpdateLessonPlan(ctx context.Context, id int64, content models.PlanContent) (*models.LessonPlan, error)
	SubmitLessonPlan(ctx context.Context, id int64) (*apiclient.Response, error)
	ApproveLessonPlan(ctx context.Context, id int64) (*apiclient.Response, error)
	RejectLessonPlan(ctx context.Context, id int64, reason string) (*apiclient.Response, error)
	ReturnLessonPlanToDraft(ctx context.Context, id int64) (*apiclient.Response, error)
	DeleteLessonPlan(ctx context.Context, id int64) (*apiclient.Response, error)

	Module(ctx context.Context, id int64) (*models.Module, error)
	CreateModule(ctx context.Context, req dto.ModuleRequest) (*models.Module, error)
	UpdateModule(ctx context.Context, id int64, req dto.ModuleRequest) (*apiclient.Response, error)
	DeleteModule(ctx context.Context, id int64) (*apiclient.Response, error)
	CreateLesson(ctx context.Context, moduleID int64, req dto.LessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id int64, req dto.LessonRequest) (*apiclient.Response, error)
	ToggleLesson(ctx context.Context, id int64) (*apiclient.Response, error)
}

// ErrGradeUnresolved is returned when neither a grade id nor a parsable label is known.
var ErrGradeUnresolved = errors.New("grade could not be resolved from profile")

const defaultRedirectDelay = 1500 * time.Millisecond

// Option customises a Controller.
type Option func(*Controller)

// WithRedirectDelay sets how long hosts wait before following a redirect.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.redirectDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserID names the acting user; teacher actions on plans owned by
// someone else are refused before any call.
func WithUserID(id string) Option {
	return func(c *Controller) { c.userID = id }
}

// TeacherScoped restricts list queries to the client's own user id.
func TeacherScoped() Option {
	return func(c *Controller) { c.teacherScoped = true }
}

// Controller runs the workflow for one view.
type Controller struct {
	api           API
	store         *Store
	actor         lifecycle.Actor
	userID        string
	teacherScoped bool
	redirectDelay time.Duration
	logger        *zap.Logger
}

// NewController binds a controller to a store.
func NewController(api API, store *Store, actor lifecycle.Actor, opts ...Option) *Controller {
	c := &Controller{
		api:           api,
		store:         store,
		actor:         actor,
		redirectDelay: defaultRedirectDelay,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the controller's store.
func (c *Controller) Store() *Store {
	return c.store
}

// View projects the current state.
func (c *Controller) View() listview.View {
	return listview.Project(c.store.input(c.actor))
}

// ResolveGrade fixes the grade filter from the profile and reloads the
// grade's curricula and module options. A failed tree load leaves its notice
// but never stops the plan list from being fetched; the returned error joins
// every failure.
func (c *Controller) ResolveGrade(ctx context.Context, profile models.Profile) (int64, error) {
	gradeID, ok := GradeForProfile(profile)
	if !ok {
		return 0, c.fail(&apiclient.Error{Kind: apiclient.KindPrecondition, Message: ErrGradeUnresolved.Error(), Err: ErrGradeUnresolved})
	}

	_, refresh := c.store.apply(listview.GradeChange(gradeID))

	var errs []error
	tree := c.store.Tree()
	if _, err := tree.LoadCurricula(ctx, gradeID); err != nil {
		c.logger.Warn("curricula load failed", zap.Int64("grade_id", gradeID), zap.Error(err))
		errs = append(errs, c.fail(err))
	}
	if _, err := tree.LoadModules(ctx, gradeID); err != nil {
		c.logger.Warn("module options load failed", zap.Int64("grade_id", gradeID), zap.Error(err))
		errs = append(errs, c.fail(err))
	}
	if refresh {
		if err := c.Refresh(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return gradeID, errors.Join(errs...)
}

// SetStatus switches the status filter.
func (c *Controller) SetStatus(ctx context.Context, status models.PlanStatus) error {
	return c.change(ctx, listview.StatusChange(status))
}

// SetModule switches the module filter; 0 clears it.
func (c *Controller) SetModule(ctx context.Context, moduleID int64) error {
	return c.change(ctx, listview.ModuleChange(moduleID))
}

// SetSearch sets the title search.
func (c *Controller) SetSearch(ctx context.Context, term string) error {
	return c.change(ctx, listview.SearchChange(term))
}

// SetPage moves to another page.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	return c.change(ctx, listview.PageChange(page))
}

// SetPageSize changes the page size.
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	return c.change(ctx, listview.PageSizeChange(size))
}

// SetSemester picks the semester tab for module options.
func (c *Controller) SetSemester(semester int) {
	c.store.apply(listview.SemesterChange(semester))
}

func (c *Controller) change(ctx context.Context, change listview.Change) error {
	if _, refresh := c.store.apply(change); refresh {
		return c.Refresh(ctx)
	}
	return nil
}

// Refresh issues one list query for the current filter. A response that
// arrives after a newer request was issued is discarded.
func (c *Controller) Refresh(ctx context.Context) error {
	gen, filter := c.store.begin()
	if c.teacherScoped && filter.GradeID == 0 {
		c.store.finish(gen, nil)
		return c.fail(&apiclient.Error{Kind: apiclient.KindPrecondition, Message: "grade filter is required", Err: ErrGradeUnresolved})
	}

	q := apiclient.PlanQuery{
		Status:     filter.Status,
		GradeID:    filter.GradeID,
		ModuleID:   filter.ModuleID,
		SearchTerm: filter.SearchTerm,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	var (
		page *models.Page[models.LessonPlan]
		err  error
	)
	if c.teacherScoped {
		page, err = c.api.TeacherLessonPlans(ctx, q)
	} else {
		page, err = c.api.LessonPlans(ctx, q)
	}

	if !c.store.finish(gen, page) {
		c.logger.Debug("stale list response discarded", zap.Uint64("generation", gen))
		return nil
	}
	if err != nil {
		c.store.setListNotice(noticeFor(err))
		return err
	}
	c.store.clearListNotice()
	return nil
}

// fail records err as the view's notice and returns it.
func (c *Controller) fail(err error) error {
	c.notify(err)
	return err
}

func (c *Controller) notify(err error) {
	c.store.setNotice(noticeFor(err))
}

func (c *Controller) succeed(message string) {
	c.store.setNotice(&listview.Notice{Message: message, Severity: listview.SeveritySuccess})
}

func noticeFor(err error) *listview.Notice {
	if err == nil {
		return nil
	}
	severity := listview.SeverityError
	if apiclient.IsKind(err, apiclient.KindPrecondition) || errors.Is(err, errPrecondition) {
		severity = listview.SeverityWarning
	}
	return &listview.Notice{Message: err.Error(), Severity: severity}
}
