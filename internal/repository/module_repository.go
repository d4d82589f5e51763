package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

const moduleColumns = `id, curriculum_id, grade_id, semester, name, description, total_periods, deleted_at, created_at, updated_at`

// ModuleRepository persists curriculum modules. Deletes are soft.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// ListSummariesByGrade returns live module summaries of a grade ordered by id.
func (r *ModuleRepository) ListSummariesByGrade(ctx context.Context, gradeID int64) ([]models.ModuleSummary, error) {
	const query = `SELECT id, grade_id, curriculum_id, name FROM modules
	WHERE grade_id = $1 AND deleted_at IS NULL ORDER BY id`
	var summaries []models.ModuleSummary
	if err := r.db.SelectContext(ctx, &summaries, query, gradeID); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return summaries, nil
}

// FindByID returns a live module.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE id = $1 AND deleted_at IS NULL`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// Create inserts a module and fills generated fields.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	now := time.Now().UTC()
	module.CreatedAt = now
	module.UpdatedAt = now
	const query = `INSERT INTO modules (curriculum_id, grade_id, semester, name, description, total_periods, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, module.CurriculumID, module.GradeID, module.Semester, module.Name,
		module.Description, module.TotalPeriods, module.CreatedAt, module.UpdatedAt).Scan(&module.ID); err != nil {
		return fmt.Errorf("create module: %w", err)
	}
	return nil
}

// Update modifies a live module.
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	module.UpdatedAt = time.Now().UTC()
	const query = `UPDATE modules SET curriculum_id = :curriculum_id, grade_id = :grade_id, semester = :semester,
	name = :name, description = :description, total_periods = :total_periods, updated_at = :updated_at
	WHERE id = :id AND deleted_at IS NULL`
	result, err := r.db.NamedExecContext(ctx, query, module)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	return expectOneRow(result, "update module")
}

// SoftDelete marks a module deleted.
func (r *ModuleRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE modules SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	return expectOneRow(result, "delete module")
}

func expectOneRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
