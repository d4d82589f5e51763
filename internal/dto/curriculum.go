package dto

// CurriculumRequest is the manager payload for creating or editing a curriculum.
type CurriculumRequest struct {
	GradeID      int64                     `json:"gradeId" validate:"required,gt=0"`
	Year         int                       `json:"year" validate:"required,gte=2000,lte=2100"`
	Description  string                    `json:"description"`
	TotalPeriods int                       `json:"totalPeriods" validate:"gte=0"`
	Details      []CurriculumDetailRequest `json:"details" validate:"dive"`
}

// CurriculumDetailRequest is one outline row; order in the slice is the display order.
type CurriculumDetailRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Section    string `json:"section"`
	SubSection string `json:"subSection"`
	Content    string `json:"content"`
	Goal       string `json:"goal"`
}
