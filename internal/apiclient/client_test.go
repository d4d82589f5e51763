package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/dto"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/pkg/middleware/requestid"
)

type recordedObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordedObserver) ObserveUpstreamRequest(method, path string, status int, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+path)
}

func writeEnvelope(w http.ResponseWriter, status, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "message": message, "data": data})
}

func TestMissingTokenIsPrecondition(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Grades(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPrecondition))
	assert.Zero(t, hits)
}

func TestTeacherListRequiresUserID(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	_, err := c.TeacherLessonPlans(context.Background(), PlanQuery{Status: models.PlanStatusDraft})
	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.Zero(t, hits)
}

func TestRequestHeadersAndQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		writeEnvelope(w, http.StatusOK, 0, "", models.Page[models.LessonPlan]{
			Items:        []models.LessonPlan{{ID: 42, Status: models.PlanStatusPending}},
			CurrentPage:  2,
			TotalPages:   3,
			TotalRecords: 21,
		})
	}))
	defer srv.Close()

	obs := &recordedObserver{}
	c := New(Config{BaseURL: srv.URL + "/", Token: "tok", UserID: "t-1"}, WithObserver(obs))
	page, err := c.TeacherLessonPlans(context.Background(), PlanQuery{Status: models.PlanStatusPending, GradeID: 5, ModuleID: 3, SearchTerm: "phân số", Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Len(t, got.Header.Get(requestid.HeaderKey), 36)
	q := got.URL.Query()
	assert.Equal(t, "2", q.Get("Status"))
	assert.Equal(t, "t-1", q.Get("userId"))
	assert.Equal(t, "5", q.Get("GradeId"))
	assert.Equal(t, "3", q.Get("ModuleId"))
	assert.Equal(t, "phân số", q.Get("SearchTerm"))
	assert.Equal(t, "2", q.Get("Page"))
	assert.Equal(t, "10", q.Get("PageSize"))

	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(42), page.Items[0].ID)
	assert.Equal(t, 21, page.TotalRecords)
	assert.Equal(t, []string{"GET /lesson-plans"}, obs.calls)
}

func TestApplicationErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, 12, "transition not allowed from current status", nil)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	_, err := c.ApproveLessonPlan(context.Background(), 1)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindApplication, apiErr.Kind)
	assert.Equal(t, 12, apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "transition not allowed from current status", apiErr.Error())
}

func TestNonZeroCodeOnSuccessStatusIsApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, 20, "module not found", nil)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	_, err := c.Module(context.Background(), 9)
	assert.True(t, IsKind(err, KindApplication))
	assert.EqualError(t, err, "module not found")
}

func TestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{BaseURL: srv.URL, Token: "tok", Timeout: 50 * time.Millisecond})
	_, err := c.Grades(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, "request timed out", err.Error())
}

func TestMalformedEnvelopeIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	_, err := c.Grades(context.Background())
	assert.True(t, IsKind(err, KindTransport))
}

func TestDeleteModuleAcceptsCode31(t *testing.T) {
	code := 31
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/modules/4", r.URL.Path)
		writeEnvelope(w, http.StatusOK, code, "Module deleted", nil)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	resp, err := c.DeleteModule(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 31, resp.Code)

	code = 0
	_, err = c.DeleteModule(context.Background(), 4)
	require.NoError(t, err)

	code = 22
	_, err = c.DeleteModule(context.Background(), 4)
	assert.True(t, IsKind(err, KindApplication))
}

func TestToggleLessonDecodesLesson(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, 22, "Lesson status changed", models.Lesson{ID: 3, ModuleID: 1, IsActive: false})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	resp, err := c.ToggleLesson(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, resp.HasData())
	var lesson models.Lesson
	require.NoError(t, resp.Decode(&lesson))
	assert.Equal(t, int64(3), lesson.ID)
	assert.False(t, lesson.IsActive)
}

func TestUpdateModuleWithoutData(t *testing.T) {
	var body dto.ModuleRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, http.StatusOK, 0, "Updated successfully!", nil)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	resp, err := c.UpdateModule(context.Background(), 1, dto.ModuleRequest{CurriculumID: 7, GradeID: 5, Semester: 2, Name: "Numbers"})
	require.NoError(t, err)
	assert.False(t, resp.HasData())
	assert.Equal(t, "Numbers", body.Name)
	assert.Equal(t, 2, body.Semester)
}

func TestRejectSendsReason(t *testing.T) {
	var body dto.RejectLessonPlanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lesson-plans/42/reject", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, http.StatusOK, 0, "Updated successfully!", nil)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	resp, err := c.RejectLessonPlan(context.Background(), 42, "Thiếu mục tiêu")
	require.NoError(t, err)
	assert.Equal(t, "Updated successfully!", resp.Message)
	assert.Equal(t, "Thiếu mục tiêu", body.Reason)
}
