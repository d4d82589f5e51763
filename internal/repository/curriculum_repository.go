package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

const curriculumColumns = `id, grade_id, year, description, total_periods, created_at, updated_at`

// CurriculumRepository persists curricula and their ordered detail rows.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs the repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListByGrade returns the curricula of a grade, newest year first.
func (r *CurriculumRepository) ListByGrade(ctx context.Context, gradeID int64) ([]models.Curriculum, error) {
	query := `SELECT ` + curriculumColumns + ` FROM curriculums WHERE grade_id = $1 ORDER BY year DESC, id`
	var curricula []models.Curriculum
	if err := r.db.SelectContext(ctx, &curricula, query, gradeID); err != nil {
		return nil, fmt.Errorf("list curriculums: %w", err)
	}
	return curricula, nil
}

// FindByID returns a curriculum including its details.
func (r *CurriculumRepository) FindByID(ctx context.Context, id int64) (*models.Curriculum, error) {
	query := `SELECT ` + curriculumColumns + ` FROM curriculums WHERE id = $1`
	var curriculum models.Curriculum
	if err := r.db.GetContext(ctx, &curriculum, query, id); err != nil {
		return nil, err
	}
	const detailQuery = `SELECT id, curriculum_id, position, topic, section, sub_section, content, goal
	FROM curriculum_details WHERE curriculum_id = $1 ORDER BY position, id`
	if err := r.db.SelectContext(ctx, &curriculum.Details, detailQuery, id); err != nil {
		return nil, fmt.Errorf("list curriculum details: %w", err)
	}
	return &curriculum, nil
}

// Save inserts or updates a curriculum and replaces its details in one transaction.
func (r *CurriculumRepository) Save(ctx context.Context, curriculum *models.Curriculum) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin curriculum tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	curriculum.UpdatedAt = now
	if curriculum.ID == 0 {
		curriculum.CreatedAt = now
		const insert = `INSERT INTO curriculums (grade_id, year, description, total_periods, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		if err := tx.QueryRowxContext(ctx, insert, curriculum.GradeID, curriculum.Year, curriculum.Description,
			curriculum.TotalPeriods, curriculum.CreatedAt, curriculum.UpdatedAt).Scan(&curriculum.ID); err != nil {
			return fmt.Errorf("create curriculum: %w", err)
		}
	} else {
		const update = `UPDATE curriculums SET grade_id = $2, year = $3, description = $4, total_periods = $5, updated_at = $6 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, update, curriculum.ID, curriculum.GradeID, curriculum.Year,
			curriculum.Description, curriculum.TotalPeriods, curriculum.UpdatedAt); err != nil {
			return fmt.Errorf("update curriculum: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM curriculum_details WHERE curriculum_id = $1`, curriculum.ID); err != nil {
			return fmt.Errorf("clear curriculum details: %w", err)
		}
	}

	const insertDetail = `INSERT INTO curriculum_details (curriculum_id, position, topic, section, sub_section, content, goal)
	VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	for i := range curriculum.Details {
		d := &curriculum.Details[i]
		d.CurriculumID = curriculum.ID
		d.Position = i + 1
		if err := tx.QueryRowxContext(ctx, insertDetail, d.CurriculumID, d.Position, d.Topic, d.Section,
			d.SubSection, d.Content, d.Goal).Scan(&d.ID); err != nil {
			return fmt.Errorf("create curriculum detail: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit curriculum: %w", err)
	}
	return nil
}
