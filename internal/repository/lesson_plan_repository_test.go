package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

var planRowColumns = []string{"id", "teacher_id", "grade_id", "module_id", "lesson_id", "title", "goal", "school_supply",
	"start_up", "knowledge", "practice", "apply", "status", "disapproved_reason", "created_at", "updated_at"}

func TestLessonPlanRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPlanRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, teacher_id")+".*"+regexp.QuoteMeta("WHERE status = $1 AND teacher_id = $2 AND grade_id = $3 AND module_id = $4 AND LOWER(title) LIKE $5 ESCAPE '\\' ORDER BY id LIMIT 10 OFFSET 10")).
		WithArgs(models.PlanStatusPending, "teacher-1", int64(5), int64(3), "%phân số%").
		WillReturnRows(sqlmock.NewRows(planRowColumns).
			AddRow(42, "teacher-1", 5, 3, nil, "Phân số", "", "", "", "", "", "", 2, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM lesson_plans WHERE status = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	plans, total, err := repo.List(context.Background(), models.LessonPlanFilter{
		Status:     models.PlanStatusPending,
		TeacherID:  "teacher-1",
		GradeID:    5,
		ModuleID:   3,
		SearchTerm: " Phân số ",
		Page:       2,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 11, total)
	assert.Equal(t, models.PlanStatusPending, plans[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonPlanRepositoryListEscapesSearchWildcards(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(title) LIKE $1 ESCAPE '\'`)).
		WithArgs(`%50\% of a\_b%`).
		WillReturnRows(sqlmock.NewRows(planRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM lesson_plans")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	plans, total, err := repo.List(context.Background(), models.LessonPlanFilter{SearchTerm: "50% of A_b", PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonPlanRepositoryUpdateStatusGuarded(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPlanRepository(db)

	reason := "Thiếu mục tiêu"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE lesson_plans SET status = $3")).
		WithArgs(int64(42), models.PlanStatusPending, models.PlanStatusRejected, &reason, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), UpdateStatusParams{
		ID: 42, From: models.PlanStatusPending, To: models.PlanStatusRejected, Reason: &reason,
	}))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lesson_plans SET status = $3")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), UpdateStatusParams{ID: 42, From: models.PlanStatusPending, To: models.PlanStatusApproved})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonPlanRepositoryCreateStartsInDraft(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lesson_plans")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	plan := &models.LessonPlan{TeacherID: "teacher-1", GradeID: 5, ModuleID: 3, Title: "Phân số", Status: models.PlanStatusApproved}
	require.NoError(t, repo.Create(context.Background(), plan))
	assert.Equal(t, int64(42), plan.ID)
	assert.Equal(t, models.PlanStatusDraft, plan.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonPlanRepositoryDeleteOnlyRejected(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPlanRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lesson_plans WHERE id = $1 AND status = 4")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 42), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
