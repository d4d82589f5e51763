package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/pkg/config"
)

type route struct {
	status  int
	code    int
	message string
	data    interface{}
}

type fakeServer struct {
	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
}

func newFakeServer(t *testing.T, routes map[string]route) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{routes: routes, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		fs.mu.Lock()
		fs.hits[key]++
		rt, ok := fs.routes[key]
		fs.mu.Unlock()
		if !ok {
			rt = route{status: http.StatusNotFound, code: 20, message: "not found"}
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			rt = route{status: http.StatusUnauthorized, code: 40, message: "unauthorized"}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": rt.code, "message": rt.message, "data": rt.data})
	}))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) hit(key string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[key]
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Env: config.EnvDevelopment,
		Workbench: config.WorkbenchConfig{
			BaseURL:           baseURL,
			Token:             "tok",
			UserID:            "teacher-1",
			Timeout:           time.Second,
			DetailConcurrency: 2,
			PageSize:          10,
		},
	}
}

func TestLessonToggleLoadsModuleBeforeLessons(t *testing.T) {
	lessons := []models.Lesson{
		{ID: 1, ModuleID: 7, Name: "Counting to ten", TotalPeriods: 2, IsActive: true},
		{ID: 2, ModuleID: 7, Name: "Shapes around us", TotalPeriods: 3, IsActive: true},
	}
	toggled := lessons[1]
	toggled.IsActive = false

	fs, srv := newFakeServer(t, map[string]route{
		"GET /modules/7": {status: http.StatusOK, data: models.Module{
			ID: 7, CurriculumID: 1, GradeID: 5, Semester: 1, Name: "Numbers",
		}},
		"GET /modules/7/lessons": {status: http.StatusOK, data: lessons},
		"DELETE /lessons/2":      {status: http.StatusOK, code: 22, message: "lesson toggled", data: toggled},
	})

	var out bytes.Buffer
	opts := options{role: "manager", status: "draft", page: 1}
	err := run(context.Background(), testConfig(srv.URL), zap.NewNop(), opts, []string{"lesson-toggle", "7", "2"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, fs.hit("GET /modules/7"))
	assert.Equal(t, 1, fs.hit("GET /modules/7/lessons"))
	assert.Equal(t, 1, fs.hit("DELETE /lessons/2"))

	text := out.String()
	assert.Contains(t, text, "Counting to ten")
	assert.Contains(t, text, "Shapes around us")
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "Shapes around us"):
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "false"), line)
		case strings.Contains(line, "Counting to ten"):
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "true"), line)
		}
	}
}

func TestLessonToggleWithoutLessonInResponse(t *testing.T) {
	fs, srv := newFakeServer(t, map[string]route{
		"GET /modules/7": {status: http.StatusOK, data: models.Module{ID: 7, CurriculumID: 1, GradeID: 5, Name: "Numbers"}},
		"GET /modules/7/lessons": {status: http.StatusOK, data: []models.Lesson{
			{ID: 2, ModuleID: 7, Name: "Shapes around us", IsActive: true},
		}},
		"DELETE /lessons/2": {status: http.StatusOK, code: 22, message: "lesson toggled"},
	})

	var out bytes.Buffer
	err := run(context.Background(), testConfig(srv.URL), zap.NewNop(), options{role: "manager", status: "draft"}, []string{"lesson-toggle", "7", "2"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, fs.hit("DELETE /lessons/2"))

	var row string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "Shapes around us") {
			row = line
		}
	}
	require.NotEmpty(t, row, out.String())
	assert.True(t, strings.HasSuffix(strings.TrimSpace(row), "false"), row)
}

func TestLessonToggleStopsWhenModuleMissing(t *testing.T) {
	fs, srv := newFakeServer(t, map[string]route{})

	var out bytes.Buffer
	err := run(context.Background(), testConfig(srv.URL), zap.NewNop(), options{role: "manager", status: "draft"}, []string{"lesson-toggle", "7", "2"}, &out)
	require.Error(t, err)
	assert.Equal(t, 0, fs.hit("DELETE /lessons/2"))
	assert.Empty(t, out.String())
}

func TestPlansListedWhenModuleOptionsFail(t *testing.T) {
	fs, srv := newFakeServer(t, map[string]route{
		"GET /grades/5/curriculums": {status: http.StatusOK, data: []models.Curriculum{{ID: 1, GradeID: 5, Year: 2024}}},
		"GET /grades/5/modules":     {status: http.StatusInternalServerError, code: 50, message: "module store unavailable"},
		"GET /lesson-plans": {status: http.StatusOK, data: models.Page[models.LessonPlan]{
			Items:        []models.LessonPlan{{ID: 42, Title: "Fractions", ModuleID: 10, GradeID: 5, Status: models.PlanStatusPending}},
			CurrentPage:  1,
			TotalPages:   1,
			TotalRecords: 1,
		}},
	})

	var out bytes.Buffer
	opts := options{role: "manager", gradeID: 5, status: "pending", page: 1}
	err := run(context.Background(), testConfig(srv.URL), zap.NewNop(), opts, []string{"plans"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, fs.hit("GET /lesson-plans"))
	text := out.String()
	assert.Contains(t, text, "Fractions")
	assert.Contains(t, text, "module store unavailable")
	assert.Contains(t, text, "page 1/1, 1 records")
}

func TestRunRejectsUnknownRole(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), testConfig("http://127.0.0.1:0"), zap.NewNop(), options{role: "janitor", status: "draft"}, []string{"plans"}, &out)
	assert.ErrorContains(t, err, `unknown role "janitor"`)
}

func TestParseStatus(t *testing.T) {
	st, err := parseStatus("Pending")
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusPending, st)

	st, err = parseStatus("4")
	require.NoError(t, err)
	assert.Equal(t, models.PlanStatusRejected, st)

	_, err = parseStatus("archived")
	assert.Error(t, err)
}

func TestIDArg(t *testing.T) {
	id, err := idArg([]string{"7", "2"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	_, err = idArg([]string{"7"}, 1)
	assert.EqualError(t, err, "missing id argument")

	_, err = idArg([]string{"-3"}, 0)
	assert.EqualError(t, err, `invalid id "-3"`)
}
