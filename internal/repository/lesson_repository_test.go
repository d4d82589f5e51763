package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

var lessonRowColumns = []string{"id", "module_id", "name", "lesson_type_id", "total_periods", "is_active", "note_id", "created_at", "updated_at"}

func TestLessonRepositoryListByModule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, module_id, name")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(lessonRowColumns).
			AddRow(1, 3, "Bài 1", 1, 2, true, nil, now, now).
			AddRow(2, 3, "Bài 2", 1, 1, false, 7, now, now))

	lessons, err := repo.ListByModule(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.False(t, lessons[1].IsActive)
	require.NotNil(t, lessons[1].NoteID)
	assert.Equal(t, int64(7), *lessons[1].NoteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepositoryToggleActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE lessons SET is_active = NOT is_active")).
		WithArgs(int64(2), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(lessonRowColumns).AddRow(2, 3, "Bài 2", 1, 1, true, nil, now, now))

	lesson, err := repo.ToggleActive(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, lesson.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lessons")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	lesson := &models.Lesson{ModuleID: 3, Name: "Bài 3", TotalPeriods: 2, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), lesson))
	assert.Equal(t, int64(8), lesson.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
