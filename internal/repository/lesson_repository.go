package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

const lessonColumns = `id, module_id, name, lesson_type_id, total_periods, is_active, note_id, created_at, updated_at`

// LessonRepository persists lessons of a module.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// ListByModule returns all lessons of a module, active or not, ordered by id.
func (r *LessonRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE module_id = $1 ORDER BY id`
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, moduleID); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// FindByID returns a lesson.
func (r *LessonRepository) FindByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	var lesson models.Lesson
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Create inserts a lesson.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	const query = `INSERT INTO lessons (module_id, name, lesson_type_id, total_periods, is_active, note_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, lesson.ModuleID, lesson.Name, lesson.LessonTypeID, lesson.TotalPeriods,
		lesson.IsActive, lesson.NoteID, lesson.CreatedAt, lesson.UpdatedAt).Scan(&lesson.ID); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

// Update modifies lesson content.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	lesson.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lessons SET name = :name, lesson_type_id = :lesson_type_id, total_periods = :total_periods,
	note_id = :note_id, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	return expectOneRow(result, "update lesson")
}

// ToggleActive flips is_active and returns the updated lesson.
func (r *LessonRepository) ToggleActive(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `UPDATE lessons SET is_active = NOT is_active, updated_at = $2 WHERE id = $1 RETURNING ` + lessonColumns
	var lesson models.Lesson
	if err := r.db.GetContext(ctx, &lesson, query, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &lesson, nil
}
