package listview

import (
	"fmt"

	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

// Severity grades a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is the one message a view shows after an action.
type Notice struct {
	Message  string
	Severity Severity
}

// ModuleReader is the part of the tree cache the projection reads.
type ModuleReader interface {
	Modules(gradeID int64) []models.Module
}

// Input is everything the projection depends on.
type Input struct {
	Filter  Filter
	Page    *models.Page[models.LessonPlan]
	Loading bool
	Notice  *Notice
	Actor   lifecycle.Actor
	Tree    ModuleReader
}

// Row is one visible plan with the actions its status allows.
type Row struct {
	Plan    models.LessonPlan
	Actions []lifecycle.Action
}

// ModuleOption is one entry of the module filter.
type ModuleOption struct {
	ID       int64
	Name     string
	Semester int
	Selected bool
}

// SemesterTab is one semester bucket of the grade's modules.
type SemesterTab struct {
	Semester int
	Label    string
	Count    int
	Active   bool
}

// View is what the list screen renders.
type View struct {
	Filter        Filter
	Items         []Row
	CurrentPage   int
	TotalPages    int
	TotalRecords  int
	Loading       bool
	Notice        *Notice
	ModuleOptions []ModuleOption
	SemesterTabs  []SemesterTab
}

// Project computes the view.
func Project(in Input) View {
	v := View{
		Filter:      in.Filter,
		Items:       []Row{},
		CurrentPage: in.Filter.Page,
		Loading:     in.Loading,
	}
	if in.Notice != nil {
		n := *in.Notice
		v.Notice = &n
	}

	if in.Page != nil {
		v.CurrentPage = in.Page.CurrentPage
		v.TotalPages = in.Page.TotalPages
		v.TotalRecords = in.Page.TotalRecords
		for _, plan := range in.Page.Items {
			row := Row{Plan: plan}
			if in.Actor != "" {
				row.Actions = lifecycle.Allowed(plan.Status, in.Actor)
			}
			v.Items = append(v.Items, row)
		}
	}

	v.ModuleOptions, v.SemesterTabs = moduleProjection(in)
	return v
}

func moduleProjection(in Input) ([]ModuleOption, []SemesterTab) {
	options := []ModuleOption{}
	tabs := []SemesterTab{
		{Semester: models.SemesterFirst, Label: semesterLabel(models.SemesterFirst)},
		{Semester: models.SemesterSecond, Label: semesterLabel(models.SemesterSecond)},
	}
	for i := range tabs {
		tabs[i].Active = in.Filter.Semester == tabs[i].Semester
	}
	if in.Tree == nil || in.Filter.GradeID == 0 {
		return options, tabs
	}

	for _, m := range in.Tree.Modules(in.Filter.GradeID) {
		for i := range tabs {
			if tabs[i].Semester == m.Semester {
				tabs[i].Count++
			}
		}
		if in.Filter.Semester != 0 && m.Semester != in.Filter.Semester {
			continue
		}
		options = append(options, ModuleOption{
			ID:       m.ID,
			Name:     m.Name,
			Semester: m.Semester,
			Selected: m.ID == in.Filter.ModuleID,
		})
	}
	return options, tabs
}

func semesterLabel(semester int) string {
	return fmt.Sprintf("Semester %d", semester)
}
