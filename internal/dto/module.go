package dto

// ModuleRequest is the create/update payload for a module.
type ModuleRequest struct {
	CurriculumID int64  `json:"curriculumId" validate:"required,gt=0"`
	GradeID      int64  `json:"gradeId" validate:"required,gt=0"`
	Semester     int    `json:"semester" validate:"oneof=1 2"`
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=2000"`
	TotalPeriods int    `json:"totalPeriods" validate:"gte=0"`
}

// LessonRequest is the create/update payload for a lesson.
type LessonRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	LessonTypeID int64  `json:"lessonTypeId" validate:"gte=0"`
	TotalPeriods int    `json:"totalPeriods" validate:"gte=0"`
	NoteID       *int64 `json:"noteId,omitempty"`
}
