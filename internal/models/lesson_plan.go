package models

import (
	"fmt"
	"time"
)

// PlanStatus captures the lesson-plan workflow states.
type PlanStatus int

const (
	PlanStatusDraft    PlanStatus = 1
	PlanStatusPending  PlanStatus = 2
	PlanStatusApproved PlanStatus = 3
	PlanStatusRejected PlanStatus = 4
)

// Valid reports whether the status is one of the four workflow states.
func (s PlanStatus) Valid() bool {
	return s >= PlanStatusDraft && s <= PlanStatusRejected
}

func (s PlanStatus) String() string {
	switch s {
	case PlanStatusDraft:
		return "Draft"
	case PlanStatusPending:
		return "Pending"
	case PlanStatusApproved:
		return "Approved"
	case PlanStatusRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("PlanStatus(%d)", int(s))
	}
}

// LessonPlan is a teacher-authored plan moving through the review workflow.
type LessonPlan struct {
	ID                int64      `db:"id" json:"id"`
	TeacherID         string     `db:"teacher_id" json:"userId"`
	GradeID           int64      `db:"grade_id" json:"gradeId"`
	ModuleID          int64      `db:"module_id" json:"moduleId"`
	LessonID          *int64     `db:"lesson_id" json:"lessonId,omitempty"`
	Title             string     `db:"title" json:"title"`
	Goal              string     `db:"goal" json:"goal"`
	SchoolSupply      string     `db:"school_supply" json:"schoolSupply"`
	StartUp           string     `db:"start_up" json:"startUp"`
	Knowledge         string     `db:"knowledge" json:"knowledge"`
	Practice          string     `db:"practice" json:"practice"`
	Apply             string     `db:"apply" json:"apply"`
	Status            PlanStatus `db:"status" json:"status"`
	DisapprovedReason *string    `db:"disapproved_reason" json:"disapprovedReason,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
}

// PlanContent holds the free-text pedagogical sections editable while Draft.
type PlanContent struct {
	Title        string `json:"title"`
	Goal         string `json:"goal"`
	SchoolSupply string `json:"schoolSupply"`
	StartUp      string `json:"startUp"`
	Knowledge    string `json:"knowledge"`
	Practice     string `json:"practice"`
	Apply        string `json:"apply"`
}

// Content extracts the editable sections.
func (p LessonPlan) Content() PlanContent {
	return PlanContent{
		Title:        p.Title,
		Goal:         p.Goal,
		SchoolSupply: p.SchoolSupply,
		StartUp:      p.StartUp,
		Knowledge:    p.Knowledge,
		Practice:     p.Practice,
		Apply:        p.Apply,
	}
}

// ApplyContent overwrites the editable sections.
func (p *LessonPlan) ApplyContent(c PlanContent) {
	p.Title = c.Title
	p.Goal = c.Goal
	p.SchoolSupply = c.SchoolSupply
	p.StartUp = c.StartUp
	p.Knowledge = c.Knowledge
	p.Practice = c.Practice
	p.Apply = c.Apply
}

// LessonPlanFilter constrains list queries.
type LessonPlanFilter struct {
	Status     PlanStatus
	TeacherID  string
	GradeID    int64
	ModuleID   int64
	SearchTerm string
	Page       int
	PageSize   int
}
