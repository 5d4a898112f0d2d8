package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/uniexpo/fair-system/models"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectOwnerInvalid   = errors.New("project owner conflict or invalid")
	ErrProjectAdvisorInvalid = errors.New("project advisor conflict or invalid")
	ErrProjectStatusInvalid  = errors.New("project status conflict or invalid")
	ErrProjectEventInvalid   = errors.New("project event conflict or invalid")
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int) (*models.Project, error)
	List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, statusID int) error
	SetApprovedAt(ctx context.Context, exec SQLExecutor, id int, approvedAt *time.Time) error
	Delete(ctx context.Context, id int) error
}

type postgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProjectRepository(db *sql.DB) ProjectRepository {
	return &postgresProjectRepository{db: db}
}

func (r *postgresProjectRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const projectColumns = `id_projeto, id_responsavel, titulo, problema, relevancia, id_situacao, id_evento, id_orientador, id_coorientador, data_criacao, data_aprovacao, created_at`

func (r *postgresProjectRepository) scanProject(row interface{ Scan(dest ...interface{}) error }, p *models.Project) error {
	return row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Problem,
		&p.Relevance,
		&p.StatusID,
		&p.EventID,
		&p.AdvisorID,
		&p.CoAdvisorID,
		&p.SubmittedAt,
		&p.ApprovedAt,
		&p.CreatedAt,
	)
}

func mapProjectFKError(pqErr *pq.Error) error {
	switch pqErr.Constraint {
	case "projetos_id_responsavel_fkey":
		return ErrProjectOwnerInvalid
	case "projetos_id_orientador_fkey", "projetos_id_coorientador_fkey":
		return ErrProjectAdvisorInvalid
	case "projetos_id_situacao_fkey":
		return ErrProjectStatusInvalid
	case "projetos_id_evento_fkey":
		return ErrProjectEventInvalid
	}
	return nil
}

func (r *postgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projetos (id_responsavel, titulo, problema, relevancia, id_situacao, id_evento, id_orientador, id_coorientador, data_criacao, data_aprovacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id_projeto, created_at`

	err := r.db.QueryRowContext(ctx, query,
		project.OwnerID,
		project.Title,
		project.Problem,
		project.Relevance,
		project.StatusID,
		project.EventID,
		project.AdvisorID,
		project.CoAdvisorID,
		project.SubmittedAt,
		project.ApprovedAt,
	).Scan(&project.ID, &project.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if mapped := mapProjectFKError(pqErr); mapped != nil {
				return mapped
			}
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *postgresProjectRepository) GetByID(ctx context.Context, id int) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projetos WHERE id_projeto = $1`, projectColumns)
	p := &models.Project{}
	if err := r.scanProject(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *postgresProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM projetos`, projectColumns))

	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	addCondition := func(expr string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(expr, argCounter))
		args = append(args, value)
		argCounter++
	}

	if filter.OwnerID != nil {
		addCondition("id_responsavel = $%d", *filter.OwnerID)
	}
	if filter.AdvisorID != nil {
		addCondition("id_orientador = $%d", *filter.AdvisorID)
	}
	if filter.EventID != nil {
		addCondition("id_evento = $%d", *filter.EventID)
	}
	if filter.StatusID != nil {
		addCondition("id_situacao = $%d", *filter.StatusID)
	}
	if len(filter.StatusIn) > 0 {
		addCondition("id_situacao = ANY($%d)", pq.Array(filter.StatusIn))
	}
	if filter.StatusNot != nil {
		addCondition("id_situacao != $%d", *filter.StatusNot)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := r.scanProject(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *postgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projetos
		SET id_responsavel = $1, titulo = $2, problema = $3, relevancia = $4,
		    id_situacao = $5, id_evento = $6, id_orientador = $7, id_coorientador = $8,
		    data_criacao = $9, data_aprovacao = $10
		WHERE id_projeto = $11`

	result, err := r.db.ExecContext(ctx, query,
		project.OwnerID,
		project.Title,
		project.Problem,
		project.Relevance,
		project.StatusID,
		project.EventID,
		project.AdvisorID,
		project.CoAdvisorID,
		project.SubmittedAt,
		project.ApprovedAt,
		project.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if mapped := mapProjectFKError(pqErr); mapped != nil {
				return mapped
			}
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkAffectedRows(result, ErrProjectNotFound)
}

// UpdateStatus accepts an executor so the review flow can run it inside the
// same transaction as the review insert.
func (r *postgresProjectRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, statusID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE projetos SET id_situacao = $1 WHERE id_projeto = $2`
	result, err := executor.ExecContext(ctx, query, statusID, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" && pqErr.Constraint == "projetos_id_situacao_fkey" {
			return ErrProjectStatusInvalid
		}
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return checkAffectedRows(result, ErrProjectNotFound)
}

func (r *postgresProjectRepository) SetApprovedAt(ctx context.Context, exec SQLExecutor, id int, approvedAt *time.Time) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE projetos SET data_aprovacao = $1 WHERE id_projeto = $2`, approvedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set project approval date: %w", err)
	}
	return checkAffectedRows(result, ErrProjectNotFound)
}

// Delete relies on ON DELETE CASCADE for the project's team, tasks, task
// records, assignments, votes and presentations.
func (r *postgresProjectRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projetos WHERE id_projeto = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return checkAffectedRows(result, ErrProjectNotFound)
}
