package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/internal/service"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
	"github.com/noah-isme/lessonplan-api/pkg/response"
)

type lessonPlanService interface {
	List(ctx context.Context, principal service.Principal, query dto.LessonPlanQuery) (*models.Page[models.LessonPlan], error)
	Get(ctx context.Context, principal service.Principal, id int64) (*models.LessonPlan, error)
	Create(ctx context.Context, principal service.Principal, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error)
	UpdateContent(ctx context.Context, principal service.Principal, id int64, content models.PlanContent) (*models.LessonPlan, error)
	Transition(ctx context.Context, principal service.Principal, id int64, action lifecycle.Action, reason string) error
}

// LessonPlanHandler exposes the lesson plan workflow.
type LessonPlanHandler struct {
	plans lessonPlanService
}

// NewLessonPlanHandler constructs a LessonPlanHandler.
func NewLessonPlanHandler(plans lessonPlanService) *LessonPlanHandler {
	return &LessonPlanHandler{plans: plans}
}

// List godoc
// @Summary List lesson plans
// @Tags LessonPlans
// @Produce json
// @Param Status query int false "1 Draft, 2 Pending, 3 Approved, 4 Rejected"
// @Param userId query string false "Author id (managers only)"
// @Param GradeId query int false "Grade ID"
// @Param ModuleId query int false "Module ID"
// @Param SearchTerm query string false "Title search"
// @Param Page query int false "Page number"
// @Param PageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans [get]
func (h *LessonPlanHandler) List(c *gin.Context) {
	principal, err := principalFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.LessonPlanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid query"))
		return
	}
	page, err := h.plans.List(c.Request.Context(), principal, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get lesson plan
// @Tags LessonPlans
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id} [get]
func (h *LessonPlanHandler) Get(c *gin.Context) {
	principal, id, ok := h.target(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), principal, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Create godoc
// @Summary Create a draft lesson plan
// @Tags LessonPlans
// @Accept json
// @Produce json
// @Param payload body dto.CreateLessonPlanRequest true "Lesson plan payload"
// @Success 201 {object} response.Envelope
// @Router /lesson-plans [post]
func (h *LessonPlanHandler) Create(c *gin.Context) {
	principal, err := principalFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson plan payload"))
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), principal, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Update godoc
// @Summary Edit a draft lesson plan
// @Tags LessonPlans
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body models.PlanContent true "Plan content"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id} [put]
func (h *LessonPlanHandler) Update(c *gin.Context) {
	principal, id, ok := h.target(c)
	if !ok {
		return
	}
	var content models.PlanContent
	if err := c.ShouldBindJSON(&content); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson plan payload"))
		return
	}
	plan, err := h.plans.UpdateContent(c.Request.Context(), principal, id, content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Submit godoc
// @Summary Submit a draft for review
// @Tags LessonPlans
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/pending [post]
func (h *LessonPlanHandler) Submit(c *gin.Context) {
	h.transition(c, lifecycle.ActionSubmit, "")
}

// Approve godoc
// @Summary Approve a pending plan
// @Tags LessonPlans
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/approve [put]
func (h *LessonPlanHandler) Approve(c *gin.Context) {
	h.transition(c, lifecycle.ActionApprove, "")
}

// Reject godoc
// @Summary Reject a pending plan
// @Tags LessonPlans
// @Accept json
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Param payload body dto.RejectLessonPlanRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/reject [put]
func (h *LessonPlanHandler) Reject(c *gin.Context) {
	var req dto.RejectLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid rejection payload"))
		return
	}
	h.transition(c, lifecycle.ActionReject, req.Reason)
}

// ReturnToDraft godoc
// @Summary Return a rejected plan to draft
// @Tags LessonPlans
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id}/draft [put]
func (h *LessonPlanHandler) ReturnToDraft(c *gin.Context) {
	h.transition(c, lifecycle.ActionReturnToDraft, "")
}

// Delete godoc
// @Summary Delete a rejected plan
// @Tags LessonPlans
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} response.Envelope
// @Router /lesson-plans/{id} [delete]
func (h *LessonPlanHandler) Delete(c *gin.Context) {
	h.transition(c, lifecycle.ActionDelete, "")
}

func (h *LessonPlanHandler) transition(c *gin.Context, action lifecycle.Action, reason string) {
	principal, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.plans.Transition(c.Request.Context(), principal, id, action, reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c)
}

func (h *LessonPlanHandler) target(c *gin.Context) (service.Principal, int64, bool) {
	principal, err := principalFromContext(c)
	if err != nil {
		response.Error(c, err)
		return service.Principal{}, 0, false
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return service.Principal{}, 0, false
	}
	return principal, id, true
}
