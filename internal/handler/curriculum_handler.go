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

type curriculumService interface {
	ListByGrade(ctx context.Context, gradeID int64) ([]models.Curriculum, error)
	Get(ctx context.Context, id int64) (*models.Curriculum, error)
	Create(ctx context.Context, req dto.CurriculumRequest) (*models.Curriculum, error)
	Update(ctx context.Context, id int64, req dto.CurriculumRequest) (*models.Curriculum, error)
}

// CurriculumHandler exposes curriculum endpoints.
type CurriculumHandler struct {
	curricula curriculumService
}

// NewCurriculumHandler constructs a CurriculumHandler.
func NewCurriculumHandler(curricula curriculumService) *CurriculumHandler {
	return &CurriculumHandler{curricula: curricula}
}

// ListByGrade godoc
// @Summary List curriculums of a grade
// @Tags Curriculums
// @Produce json
// @Param gradeId path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{gradeId}/curriculums [get]
func (h *CurriculumHandler) ListByGrade(c *gin.Context) {
	gradeID, err := pathID(c, "gradeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	curricula, err := h.curricula.ListByGrade(c.Request.Context(), gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curricula)
}

// Get godoc
// @Summary Get curriculum with its outline
// @Tags Curriculums
// @Produce json
// @Param id path int true "Curriculum ID"
// @Success 200 {object} response.Envelope
// @Router /curriculums/{id} [get]
func (h *CurriculumHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	curriculum, err := h.curricula.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curriculum)
}

// Create godoc
// @Summary Create curriculum
// @Tags Curriculums
// @Accept json
// @Produce json
// @Param payload body dto.CurriculumRequest true "Curriculum payload"
// @Success 201 {object} response.Envelope
// @Router /curriculums [post]
func (h *CurriculumHandler) Create(c *gin.Context) {
	var req dto.CurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid curriculum payload"))
		return
	}
	curriculum, err := h.curricula.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, curriculum)
}

// Update godoc
// @Summary Update curriculum
// @Tags Curriculums
// @Accept json
// @Produce json
// @Param id path int true "Curriculum ID"
// @Param payload body dto.CurriculumRequest true "Curriculum payload"
// @Success 200 {object} response.Envelope
// @Router /curriculums/{id} [put]
func (h *CurriculumHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation, "invalid curriculum payload"))
		return
	}
	curriculum, err := h.curricula.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curriculum)
}
