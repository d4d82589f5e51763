package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/models"
	appErrors "github.com/noah-isme/lessonplan-api/pkg/errors"
	"github.com/noah-isme/lessonplan-api/pkg/response"
)

type moduleService interface {
	ListSummaries(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error)
	Get(ctx context.Context, id int64) (*models.Module, error)
	Create(ctx context.Context, req dto.ModuleRequest) (*models.Module, error)
	Update(ctx context.Context, id int64, req dto.ModuleRequest) error
	Delete(ctx context.Context, id int64) error
	ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, moduleID int64, req dto.LessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id int64, req dto.LessonRequest) error
	ToggleLesson(ctx context.Context, id int64) (*models.Lesson, error)
}

// ModuleHandler exposes module and lesson endpoints.
type ModuleHandler struct {
	modules moduleService
}

// NewModuleHandler constructs a ModuleHandler.
func NewModuleHandler(modules moduleService) *ModuleHandler {
	return &ModuleHandler{modules: modules}
}

// ListByGrade godoc
// @Summary List module summaries of a grade
// @Tags Modules
// @Produce json
// @Param gradeId path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{gradeId}/modules [get]
func (h *ModuleHandler) ListByGrade(c *gin.Context) {
	gradeID, err := pathID(c, "gradeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	modules, err := h.modules.ListSummaries(c.Request.Context(), gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modules)
}

// Get godoc
// @Summary Get module detail
// @Tags Modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /modules/{moduleId} [get]
func (h *ModuleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "moduleId")
	if err != nil {
		response.Error(c, err)
		return
	}
	module, err := h.modules.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, module)
}

// Create godoc
// @Summary Create module
// @Tags Modules
// @Accept json
// @Produce json
// @Param payload body dto.ModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Router /modules [post]
func (h *ModuleHandler) Create(c *gin.Context) {
	var req dto.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid module payload"))
		return
	}
	module, err := h.modules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}

// Update godoc
// @Summary Update module
// @Description Answers with a message only; clients re-read the module.
// @Tags Modules
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param payload body dto.ModuleRequest true "Module payload"
// @Success 200 {object} response.Envelope
// @Router /modules/{moduleId} [put]
func (h *ModuleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "moduleId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid module payload"))
		return
	}
	if err := h.modules.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c)
}

// Delete godoc
// @Summary Delete module
// @Description Soft delete; the envelope code is 31.
// @Tags Modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /modules/{moduleId} [delete]
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "moduleId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.modules.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Coded(c, http.StatusOK, appErrors.CodeModuleDeleted, "Module deleted", nil)
}

// ListLessons godoc
// @Summary List lessons of a module
// @Tags Lessons
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /modules/{moduleId}/lessons [get]
func (h *ModuleHandler) ListLessons(c *gin.Context) {
	id, err := pathID(c, "moduleId")
	if err != nil {
		response.Error(c, err)
		return
	}
	lessons, err := h.modules.ListLessons(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons)
}

// CreateLesson godoc
// @Summary Create lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param payload body dto.LessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Router /modules/{moduleId}/lessons [post]
func (h *ModuleHandler) CreateLesson(c *gin.Context) {
	moduleID, err := pathID(c, "moduleId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson payload"))
		return
	}
	lesson, err := h.modules.CreateLesson(c.Request.Context(), moduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// UpdateLesson godoc
// @Summary Update lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param payload body dto.LessonRequest true "Lesson payload"
// @Success 200 {object} response.Envelope
// @Router /lessons/{lessonId} [put]
func (h *ModuleHandler) UpdateLesson(c *gin.Context) {
	id, err := pathID(c, "lessonId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lesson payload"))
		return
	}
	if err := h.modules.UpdateLesson(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Updated(c)
}

// ToggleLesson godoc
// @Summary Toggle lesson active flag
// @Description DELETE flips is_active and answers code 22 with the lesson.
// @Tags Lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /lessons/{lessonId} [delete]
func (h *ModuleHandler) ToggleLesson(c *gin.Context) {
	id, err := pathID(c, "lessonId")
	if err != nil {
		response.Error(c, err)
		return
	}
	lesson, err := h.modules.ToggleLesson(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Coded(c, http.StatusOK, appErrors.CodeLessonToggled, "Lesson status changed", lesson)
}
