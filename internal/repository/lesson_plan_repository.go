package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

const lessonPlanColumns = `id, teacher_id, grade_id, module_id, lesson_id, title, goal, school_supply, start_up,
       knowledge, practice, apply, status, disapproved_reason, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// LessonPlanRepository persists lesson plans and their workflow status.
type LessonPlanRepository struct {
	db *sqlx.DB
}

// NewLessonPlanRepository constructs the repository.
func NewLessonPlanRepository(db *sqlx.DB) *LessonPlanRepository {
	return &LessonPlanRepository{db: db}
}

// List returns one page of plans matching the filter plus the total match count.
func (r *LessonPlanRepository) List(ctx context.Context, filter models.LessonPlanFilter) ([]models.LessonPlan, int, error) {
	conditions := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)
	if filter.Status != 0 {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if filter.GradeID != 0 {
		args = append(args, filter.GradeID)
		conditions = append(conditions, fmt.Sprintf("grade_id = $%d", len(args)))
	}
	if filter.ModuleID != 0 {
		args = append(args, filter.ModuleID)
		conditions = append(conditions, fmt.Sprintf("module_id = $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(term))+"%")
		conditions = append(conditions, fmt.Sprintf(`LOWER(title) LIKE $%d ESCAPE '\'`, len(args)))
	}

	base := "FROM lesson_plans"
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY id LIMIT %d OFFSET %d", lessonPlanColumns, base, size, offset)
	var plans []models.LessonPlan
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lesson plans: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count lesson plans: %w", err)
	}
	return plans, total, nil
}

// FindByID returns a plan.
func (r *LessonPlanRepository) FindByID(ctx context.Context, id int64) (*models.LessonPlan, error) {
	query := `SELECT ` + lessonPlanColumns + ` FROM lesson_plans WHERE id = $1`
	var plan models.LessonPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create inserts a plan in Draft.
func (r *LessonPlanRepository) Create(ctx context.Context, plan *models.LessonPlan) error {
	now := time.Now().UTC()
	plan.Status = models.PlanStatusDraft
	plan.CreatedAt = now
	plan.UpdatedAt = now
	const query = `INSERT INTO lesson_plans (teacher_id, grade_id, module_id, lesson_id, title, goal, school_supply, start_up,
	knowledge, practice, apply, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, plan.TeacherID, plan.GradeID, plan.ModuleID, plan.LessonID, plan.Title,
		plan.Goal, plan.SchoolSupply, plan.StartUp, plan.Knowledge, plan.Practice, plan.Apply, plan.Status,
		plan.CreatedAt, plan.UpdatedAt).Scan(&plan.ID); err != nil {
		return fmt.Errorf("create lesson plan: %w", err)
	}
	return nil
}

// UpdateContent rewrites the pedagogical sections of a Draft plan.
func (r *LessonPlanRepository) UpdateContent(ctx context.Context, plan *models.LessonPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lesson_plans SET title = :title, goal = :goal, school_supply = :school_supply, start_up = :start_up,
	knowledge = :knowledge, practice = :practice, apply = :apply, updated_at = :updated_at
	WHERE id = :id AND status = 1`
	result, err := r.db.NamedExecContext(ctx, query, plan)
	if err != nil {
		return fmt.Errorf("update lesson plan: %w", err)
	}
	return expectOneRow(result, "update lesson plan")
}

// UpdateStatusParams describes a guarded status change.
type UpdateStatusParams struct {
	ID     int64
	From   models.PlanStatus
	To     models.PlanStatus
	Reason *string
}

// UpdateStatus moves a plan from one status to another. The row must still be in From.
func (r *LessonPlanRepository) UpdateStatus(ctx context.Context, params UpdateStatusParams) error {
	const query = `UPDATE lesson_plans SET status = $3, disapproved_reason = $4, updated_at = $5
	WHERE id = $1 AND status = $2`
	result, err := r.db.ExecContext(ctx, query, params.ID, params.From, params.To, params.Reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update lesson plan status: %w", err)
	}
	return expectOneRow(result, "update lesson plan status")
}

// Delete removes a Rejected plan permanently.
func (r *LessonPlanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lesson_plans WHERE id = $1 AND status = 4`, id)
	if err != nil {
		return fmt.Errorf("delete lesson plan: %w", err)
	}
	return expectOneRow(result, "delete lesson plan")
}
