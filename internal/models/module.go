package models

import "time"

// Semesters a module can be scheduled in.
const (
	SemesterFirst  = 1
	SemesterSecond = 2
)

// ModuleSummary is the shape returned by the per-grade module list.
type ModuleSummary struct {
	ID           int64  `db:"id" json:"id"`
	GradeID      int64  `db:"grade_id" json:"gradeId"`
	CurriculumID int64  `db:"curriculum_id" json:"curriculumId"`
	Name         string `db:"name" json:"name"`
}

// Module is a curriculum topic/unit. Lessons is nil until fetched.
type Module struct {
	ID           int64      `db:"id" json:"id"`
	CurriculumID int64      `db:"curriculum_id" json:"curriculumId"`
	GradeID      int64      `db:"grade_id" json:"gradeId"`
	Semester     int        `db:"semester" json:"semester"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	TotalPeriods int        `db:"total_periods" json:"totalPeriods"`
	Lessons      []Lesson   `db:"-" json:"lessons,omitempty"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Summary projects the module onto its list shape.
func (m Module) Summary() ModuleSummary {
	return ModuleSummary{ID: m.ID, GradeID: m.GradeID, CurriculumID: m.CurriculumID, Name: m.Name}
}
