package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/models"
)

type staticTree []models.Module

func (s staticTree) Modules(gradeID int64) []models.Module {
	var out []models.Module
	for _, m := range s {
		if m.GradeID == gradeID {
			out = append(out, m)
		}
	}
	return out
}

func TestApplyResetsPageOnFilterChanges(t *testing.T) {
	base := NewFilter(models.PlanStatusDraft, 10)
	base.Page = 4
	base.GradeID = 5

	cases := []struct {
		name   string
		change Change
	}{
		{"status", StatusChange(models.PlanStatusPending)},
		{"module", ModuleChange(3)},
		{"search", SearchChange("fractions")},
		{"page size", PageSizeChange(20)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, refresh := base.Apply(tc.change)
			assert.True(t, refresh)
			assert.Equal(t, 1, next.Page)
		})
	}
}

func TestApplyGradeKeepsPage(t *testing.T) {
	f := NewFilter(models.PlanStatusDraft, 10)
	f.Page = 3
	f.GradeID = 4
	f.ModuleID = 9

	next, refresh := f.Apply(GradeChange(5))
	assert.True(t, refresh)
	assert.Equal(t, 3, next.Page)
	assert.Equal(t, int64(5), next.GradeID)
	assert.Zero(t, next.ModuleID)

	same, refresh := next.Apply(GradeChange(5))
	assert.False(t, refresh)
	assert.Equal(t, next, same)
}

func TestApplyPageAndNoops(t *testing.T) {
	f := NewFilter(models.PlanStatusDraft, 0)
	assert.Equal(t, DefaultPageSize, f.PageSize)

	next, refresh := f.Apply(PageChange(2))
	assert.True(t, refresh)
	assert.Equal(t, 2, next.Page)

	_, refresh = next.Apply(PageChange(2))
	assert.False(t, refresh)

	clamped, refresh := next.Apply(PageChange(-1))
	assert.True(t, refresh)
	assert.Equal(t, 1, clamped.Page)

	_, refresh = f.Apply(SearchChange("   "))
	assert.False(t, refresh)

	sem, refresh := next.Apply(SemesterChange(2))
	assert.False(t, refresh)
	assert.Equal(t, 2, sem.Semester)
	assert.Equal(t, 2, sem.Page)
}

func TestProjectPageAndActions(t *testing.T) {
	page := &models.Page[models.LessonPlan]{
		Items: []models.LessonPlan{
			{ID: 1, Status: models.PlanStatusDraft},
			{ID: 2, Status: models.PlanStatusRejected},
		},
		CurrentPage:  2,
		TotalPages:   5,
		TotalRecords: 42,
	}
	v := Project(Input{
		Filter:  NewFilter(models.PlanStatusDraft, 10),
		Page:    page,
		Loading: true,
		Notice:  &Notice{Message: "Updated successfully", Severity: SeveritySuccess},
		Actor:   lifecycle.ActorTeacher,
	})

	require.Len(t, v.Items, 2)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionEdit, lifecycle.ActionSubmit}, v.Items[0].Actions)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionReturnToDraft, lifecycle.ActionDelete}, v.Items[1].Actions)
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, 5, v.TotalPages)
	assert.Equal(t, 42, v.TotalRecords)
	assert.True(t, v.Loading)
	assert.Equal(t, SeveritySuccess, v.Notice.Severity)
}

func TestProjectWithoutPage(t *testing.T) {
	f := NewFilter(models.PlanStatusPending, 10)
	v := Project(Input{Filter: f})
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Zero(t, v.TotalRecords)
	assert.Empty(t, v.ModuleOptions)
	assert.Len(t, v.SemesterTabs, 2)
}

func TestProjectModuleOptionsAndSemesterTabs(t *testing.T) {
	tree := staticTree{
		{ID: 10, GradeID: 5, Semester: 1, Name: "Numbers"},
		{ID: 20, GradeID: 5, Semester: 1, Name: "Shapes"},
		{ID: 30, GradeID: 5, Semester: 2, Name: "Measures"},
		{ID: 40, GradeID: 6, Semester: 1, Name: "Other grade"},
	}
	f := NewFilter(models.PlanStatusDraft, 10)
	f.GradeID = 5
	f.ModuleID = 20
	f.Semester = 1

	v := Project(Input{Filter: f, Tree: tree})
	require.Len(t, v.ModuleOptions, 2)
	assert.Equal(t, int64(10), v.ModuleOptions[0].ID)
	assert.True(t, v.ModuleOptions[1].Selected)
	assert.Equal(t, []SemesterTab{
		{Semester: 1, Label: "Semester 1", Count: 2, Active: true},
		{Semester: 2, Label: "Semester 2", Count: 1},
	}, v.SemesterTabs)

	f.Semester = 0
	v = Project(Input{Filter: f, Tree: tree})
	assert.Len(t, v.ModuleOptions, 3)
}
