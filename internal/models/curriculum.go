package models

import "time"

// Curriculum is the top of the curriculum -> module -> lesson tree for one grade.
type Curriculum struct {
	ID           int64              `db:"id" json:"id"`
	GradeID      int64              `db:"grade_id" json:"gradeId"`
	Year         int                `db:"year" json:"year"`
	Description  string             `db:"description" json:"description"`
	TotalPeriods int                `db:"total_periods" json:"totalPeriods"`
	Details      []CurriculumDetail `db:"-" json:"details,omitempty"`
	CreatedAt    time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updatedAt"`
}

// CurriculumDetail is one ordered row of a curriculum outline.
type CurriculumDetail struct {
	ID           int64  `db:"id" json:"id"`
	CurriculumID int64  `db:"curriculum_id" json:"curriculumId"`
	Position     int    `db:"position" json:"position"`
	Topic        string `db:"topic" json:"topic"`
	Section      string `db:"section" json:"section"`
	SubSection   string `db:"sub_section" json:"subSection"`
	Content      string `db:"content" json:"content"`
	Goal         string `db:"goal" json:"goal"`
}
