package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var moduleRowColumns = []string{"id", "curriculum_id", "grade_id", "semester", "name", "description", "total_periods", "deleted_at", "created_at", "updated_at"}

func TestModuleRepositoryListSummaries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grade_id", "curriculum_id", "name"}).
		AddRow(1, 5, 9, "Số tự nhiên").
		AddRow(2, 5, 9, "Phân số")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, grade_id, curriculum_id, name FROM modules")).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	list, err := repo.ListSummariesByGrade(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Phân số", list[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, curriculum_id, grade_id, semester")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(moduleRowColumns).AddRow(3, 9, 5, 2, "Hình học", "", 12, nil, now, now))

	module, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, module.Semester)
	assert.Nil(t, module.Lessons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modules")).
		WithArgs(int64(9), int64(5), 1, "Số tự nhiên", "desc", 10, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	module := &models.Module{CurriculumID: 9, GradeID: 5, Semester: 1, Name: "Số tự nhiên", Description: "desc", TotalPeriods: 10}
	require.NoError(t, repo.Create(context.Background(), module))
	assert.Equal(t, int64(11), module.ID)
	assert.False(t, module.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositorySoftDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE modules SET deleted_at")).
		WithArgs(int64(4), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SoftDelete(context.Background(), 4))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE modules SET deleted_at")).
		WithArgs(int64(4), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.SoftDelete(context.Background(), 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE modules SET curriculum_id")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Module{ID: 3, Name: "x"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
