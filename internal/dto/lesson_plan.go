package dto

import "github.com/noah-isme/lessonplan-api/internal/models"

// CreateLessonPlanRequest starts a new Draft plan.
type CreateLessonPlanRequest struct {
	GradeID  int64  `json:"gradeId" validate:"required,gt=0"`
	ModuleID int64  `json:"moduleId" validate:"required,gt=0"`
	LessonID *int64 `json:"lessonId,omitempty"`
	models.PlanContent
}

// RejectLessonPlanRequest carries the manager's reason.
type RejectLessonPlanRequest struct {
	Reason string `json:"reason" binding:"required" validate:"required"`
}

// LessonPlanQuery mirrors the list query string.
type LessonPlanQuery struct {
	Status     int    `form:"Status"`
	UserID     string `form:"userId"`
	GradeID    int64  `form:"GradeId"`
	ModuleID   int64  `form:"ModuleId"`
	SearchTerm string `form:"SearchTerm"`
	Page       int    `form:"Page"`
	PageSize   int    `form:"PageSize"`
}
