// Package listview projects workflow state into what a lesson plan list
// screen shows. It performs no I/O.
package listview

import (
	"strings"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// Filter is the tuple a list query is built from. Semester only narrows module options.
type Filter struct {
	Status     models.PlanStatus
	GradeID    int64
	ModuleID   int64
	SearchTerm string
	Semester   int
	Page       int
	PageSize   int
}

// NewFilter returns the filter a freshly mounted view starts with.
func NewFilter(status models.PlanStatus, pageSize int) Filter {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Filter{Status: status, Page: 1, PageSize: pageSize}
}

type field int

const (
	fieldStatus field = iota + 1
	fieldGrade
	fieldModule
	fieldSearch
	fieldSemester
	fieldPage
	fieldPageSize
)

// Change is one user or workflow edit to the filter.
type Change struct {
	field field
	id    int64
	n     int
	text  string
}

// StatusChange selects the status tab.
func StatusChange(status models.PlanStatus) Change {
	return Change{field: fieldStatus, n: int(status)}
}

// GradeChange records the resolved grade.
func GradeChange(gradeID int64) Change { return Change{field: fieldGrade, id: gradeID} }

// ModuleChange selects a module; 0 clears the selection.
func ModuleChange(moduleID int64) Change { return Change{field: fieldModule, id: moduleID} }

// SearchChange sets the free-text title search.
func SearchChange(term string) Change { return Change{field: fieldSearch, text: term} }

// SemesterChange picks a semester tab; 0 shows both.
func SemesterChange(semester int) Change { return Change{field: fieldSemester, n: semester} }

// PageChange moves to a page.
func PageChange(page int) Change { return Change{field: fieldPage, n: page} }

// PageSizeChange changes the page size.
func PageSizeChange(size int) Change { return Change{field: fieldPageSize, n: size} }

// Apply returns the filter after change and whether the list must be re-fetched.
// Status, module, search and page size edits reset the page to 1. A grade change
// keeps the page and clears the module selection, which belonged to the old grade.
// Semester only affects module options and never re-fetches the list.
func (f Filter) Apply(c Change) (Filter, bool) {
	next := f
	switch c.field {
	case fieldStatus:
		next.Status = models.PlanStatus(c.n)
	case fieldGrade:
		next.GradeID = c.id
		if c.id != f.GradeID {
			next.ModuleID = 0
		}
	case fieldModule:
		next.ModuleID = c.id
	case fieldSearch:
		next.SearchTerm = strings.TrimSpace(c.text)
	case fieldSemester:
		next.Semester = c.n
		return next, false
	case fieldPage:
		next.Page = c.n
		if next.Page < 1 {
			next.Page = 1
		}
	case fieldPageSize:
		next.PageSize = c.n
		if next.PageSize <= 0 {
			next.PageSize = DefaultPageSize
		}
	default:
		return f, false
	}

	if next == f {
		return f, false
	}
	switch c.field {
	case fieldStatus, fieldModule, fieldSearch, fieldPageSize:
		next.Page = 1
	}
	return next, true
}
