package treecache

import (
	"sort"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

// PeriodTotals compares a module's planned periods with its active lessons.
type PeriodTotals struct {
	Planned   int
	Scheduled int
}

// Remaining is the number of planned periods not yet covered by active lessons.
func (p PeriodTotals) Remaining() int {
	return p.Planned - p.Scheduled
}

// Modules returns a grade's cached modules by ascending id.
func (c *Cache) Modules(gradeID int64) []models.Module {
	return c.modulesWhere(func(m models.Module) bool { return m.GradeID == gradeID })
}

// ModulesBySemester returns a grade's cached modules of one semester by ascending id.
func (c *Cache) ModulesBySemester(gradeID int64, semester int) []models.Module {
	return c.modulesWhere(func(m models.Module) bool { return m.GradeID == gradeID && m.Semester == semester })
}

func (c *Cache) modulesWhere(keep func(models.Module) bool) []models.Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Module, 0, len(c.modules))
	for _, rec := range c.modules {
		if keep(rec.module) {
			out = append(out, rec.snapshot())
		}
	}
	sortModules(out)
	return out
}

// Module returns one cached module; Lessons is nil until loaded.
func (c *Cache) Module(moduleID int64) (models.Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.modules[moduleID]
	if !ok {
		return models.Module{}, false
	}
	return rec.snapshot(), true
}

// Lessons returns a module's cached lessons and whether they are loaded.
func (c *Cache) Lessons(moduleID int64) ([]models.Lesson, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.modules[moduleID]
	if !ok || !rec.lessonsLoaded {
		return nil, false
	}
	return rec.sortedLessons(), true
}

// Curriculum returns one cached curriculum.
func (c *Cache) Curriculum(id int64) (models.Curriculum, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cur, ok := c.curricula[id]
	if !ok {
		return models.Curriculum{}, false
	}
	cur.Details = append([]models.CurriculumDetail(nil), cur.Details...)
	return cur, true
}

// Curricula returns a grade's cached curricula by ascending id.
func (c *Cache) Curricula(gradeID int64) []models.Curriculum {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Curriculum, 0)
	for _, cur := range c.curricula {
		if cur.GradeID == gradeID {
			cur.Details = append([]models.CurriculumDetail(nil), cur.Details...)
			out = append(out, cur)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PeriodTotals sums active lesson periods of a module with loaded lessons.
func (c *Cache) PeriodTotals(moduleID int64) (PeriodTotals, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.modules[moduleID]
	if !ok || !rec.lessonsLoaded {
		return PeriodTotals{}, false
	}
	totals := PeriodTotals{Planned: rec.module.TotalPeriods}
	for _, lesson := range rec.lessons {
		if lesson.IsActive {
			totals.Scheduled += lesson.TotalPeriods
		}
	}
	return totals, true
}

func (r *moduleRecord) snapshot() models.Module {
	m := r.module
	if r.lessonsLoaded {
		m.Lessons = r.sortedLessons()
	}
	return m
}

func (r *moduleRecord) sortedLessons() []models.Lesson {
	out := make([]models.Lesson, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		out = append(out, lesson)
	}
	sortLessons(out)
	return out
}

func sortModules(modules []models.Module) {
	sort.Slice(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })
}

func sortLessons(lessons []models.Lesson) {
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].ID < lessons[j].ID })
}
