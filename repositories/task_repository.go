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
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskProjectInvalid = errors.New("task project conflict or invalid")
	ErrTaskStatusInvalid  = errors.New("task status conflict or invalid")
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int) (*models.Task, error)
	ListByProject(ctx context.Context, projectID int, statusID *int) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int) error
}

type postgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTaskRepository(db *sql.DB) TaskRepository {
	return &postgresTaskRepository{db: db}
}

const taskColumns = `id_tarefa, id_projeto, descricao, detalhe, id_situacao, data_inicio_prevista, data_fim_prevista, data_conclusao, created_at`

func (r *postgresTaskRepository) scanTask(row interface{ Scan(dest ...interface{}) error }, t *models.Task) error {
	return row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Description,
		&t.Detail,
		&t.StatusID,
		&t.PlannedStart,
		&t.PlannedEnd,
		&t.CompletedAt,
		&t.CreatedAt,
	)
}

func mapTaskFKError(pqErr *pq.Error) error {
	switch pqErr.Constraint {
	case "tarefas_id_projeto_fkey":
		return ErrTaskProjectInvalid
	case "tarefas_id_situacao_fkey":
		return ErrTaskStatusInvalid
	}
	return nil
}

func (r *postgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tarefas (id_projeto, descricao, detalhe, id_situacao, data_inicio_prevista, data_fim_prevista, data_conclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_tarefa, created_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ProjectID,
		task.Description,
		task.Detail,
		task.StatusID,
		task.PlannedStart,
		task.PlannedEnd,
		task.CompletedAt,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if mapped := mapTaskFKError(pqErr); mapped != nil {
				return mapped
			}
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *postgresTaskRepository) GetByID(ctx context.Context, id int) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tarefas WHERE id_tarefa = $1`, taskColumns)
	t := &models.Task{}
	if err := r.scanTask(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *postgresTaskRepository) ListByProject(ctx context.Context, projectID int, statusID *int) ([]*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tarefas WHERE id_projeto = $1`, taskColumns)
	args := []interface{}{projectID}
	if statusID != nil {
		query += ` AND id_situacao = $2`
		args = append(args, *statusID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := r.scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func (r *postgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tarefas
		SET descricao = $1, detalhe = $2, id_situacao = $3,
		    data_inicio_prevista = $4, data_fim_prevista = $5, data_conclusao = $6
		WHERE id_tarefa = $7`

	result, err := r.db.ExecContext(ctx, query,
		task.Description,
		task.Detail,
		task.StatusID,
		task.PlannedStart,
		task.PlannedEnd,
		task.CompletedAt,
		task.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if mapped := mapTaskFKError(pqErr); mapped != nil {
				return mapped
			}
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkAffectedRows(result, ErrTaskNotFound)
}

// Delete cascades to the task's records and their comments.
func (r *postgresTaskRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tarefas WHERE id_tarefa = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkAffectedRows(result, ErrTaskNotFound)
}
