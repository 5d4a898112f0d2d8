package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/uniexpo/fair-system/models"
)

var (
	ErrAssignmentNotFound         = errors.New("evaluator assignment not found")
	ErrAssignmentConflict         = errors.New("evaluator is already assigned to this project")
	ErrAssignmentLimit            = errors.New("project has reached the evaluator assignment limit")
	ErrAssignmentProjectInvalid   = errors.New("assignment project conflict or invalid")
	ErrAssignmentEvaluatorInvalid = errors.New("assignment evaluator conflict or invalid")
)

type AssignmentRepository interface {
	// CreateBounded inserts only while the project has fewer than maxPerProject
	// assignments, in a single statement. Returns ErrAssignmentLimit when the
	// guard fails and ErrAssignmentConflict on the (project, evaluator) index.
	CreateBounded(ctx context.Context, assignment *models.Assignment, maxPerProject int) error
	GetByID(ctx context.Context, id int) (*models.Assignment, error)
	GetByProjectAndEvaluator(ctx context.Context, projectID, evaluatorID int) (*models.Assignment, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Assignment, error)
	ListByEvaluator(ctx context.Context, evaluatorID int, statusFilter *models.AssignmentStatus) ([]*models.Assignment, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.AssignmentStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &postgresAssignmentRepository{db: db}
}

func (r *postgresAssignmentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const assignmentColumns = `id, id_projeto, id_avaliador, status, created_at`

func (r *postgresAssignmentRepository) scanAssignment(row interface{ Scan(dest ...interface{}) error }, a *models.Assignment) error {
	return row.Scan(&a.ID, &a.ProjectID, &a.EvaluatorID, &a.Status, &a.CreatedAt)
}

func (r *postgresAssignmentRepository) CreateBounded(ctx context.Context, assignment *models.Assignment, maxPerProject int) error {
	// Count guard and insert are one statement so concurrent assignments
	// cannot both pass a stale count.
	query := `
		INSERT INTO avaliador_projeto (id_projeto, id_avaliador, status)
		SELECT $1, $2, $3
		WHERE (SELECT COUNT(*) FROM avaliador_projeto WHERE id_projeto = $1) < $4
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		assignment.ProjectID,
		assignment.EvaluatorID,
		assignment.Status,
		maxPerProject,
	).Scan(&assignment.ID, &assignment.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssignmentLimit
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrAssignmentConflict
			case "23503":
				switch pqErr.Constraint {
				case "avaliador_projeto_id_projeto_fkey":
					return ErrAssignmentProjectInvalid
				case "avaliador_projeto_id_avaliador_fkey":
					return ErrAssignmentEvaluatorInvalid
				}
			}
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *postgresAssignmentRepository) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM avaliador_projeto WHERE id = $1`, assignmentColumns)
	a := &models.Assignment{}
	if err := r.scanAssignment(r.db.QueryRowContext(ctx, query, id), a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

func (r *postgresAssignmentRepository) GetByProjectAndEvaluator(ctx context.Context, projectID, evaluatorID int) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM avaliador_projeto WHERE id_projeto = $1 AND id_avaliador = $2`, assignmentColumns)
	a := &models.Assignment{}
	if err := r.scanAssignment(r.db.QueryRowContext(ctx, query, projectID, evaluatorID), a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment by project and evaluator: %w", err)
	}
	return a, nil
}

func (r *postgresAssignmentRepository) ListByProject(ctx context.Context, projectID int) ([]*models.Assignment, error) {
	query := `
		SELECT a.id, a.id_projeto, a.id_avaliador, a.status, a.created_at,
		       u.nome, u.email
		FROM avaliador_projeto a
		JOIN usuarios u ON u.id_usuario = a.id_avaliador
		WHERE a.id_projeto = $1
		ORDER BY a.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by project: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		var a models.Assignment
		var u models.User
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.EvaluatorID, &a.Status, &a.CreatedAt, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		u.ID = a.EvaluatorID
		a.Evaluator = &u
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) ListByEvaluator(ctx context.Context, evaluatorID int, statusFilter *models.AssignmentStatus) ([]*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM avaliador_projeto WHERE id_avaliador = $1`, assignmentColumns)
	args := []interface{}{evaluatorID}
	if statusFilter != nil {
		query += ` AND status = $2`
		args = append(args, *statusFilter)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by evaluator: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		var a models.Assignment
		if err := r.scanAssignment(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

// UpdateStatus accepts an executor so the evaluation submission can conclude
// the assignment inside its transaction.
func (r *postgresAssignmentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.AssignmentStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE avaliador_projeto SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

func (r *postgresAssignmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM avaliador_projeto WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}
