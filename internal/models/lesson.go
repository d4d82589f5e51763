package models

import "time"

// Lesson belongs to one module. IsActive doubles as the soft delete flag.
type Lesson struct {
	ID           int64     `db:"id" json:"id"`
	ModuleID     int64     `db:"module_id" json:"moduleId"`
	Name         string    `db:"name" json:"name"`
	LessonTypeID int64     `db:"lesson_type_id" json:"lessonTypeId"`
	TotalPeriods int       `db:"total_periods" json:"totalPeriods"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	NoteID       *int64    `db:"note_id" json:"noteId,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
