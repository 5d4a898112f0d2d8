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
	ErrTaskRecordNotFound    = errors.New("task record not found")
	ErrTaskRecordTaskInvalid = errors.New("task record task conflict or invalid")
	ErrTaskRecordUserInvalid = errors.New("task record responsible user conflict or invalid")
)

type TaskRecordRepository interface {
	Create(ctx context.Context, record *models.TaskRecord) error
	GetByID(ctx context.Context, id int) (*models.TaskRecord, error)
	ListByTask(ctx context.Context, taskID int) ([]*models.TaskRecord, error)
	Update(ctx context.Context, record *models.TaskRecord) error
	Delete(ctx context.Context, id int) error
}

type postgresTaskRecordRepository struct {
	db *sql.DB
}

func NewPostgresTaskRecordRepository(db *sql.DB) TaskRecordRepository {
	return &postgresTaskRecordRepository{db: db}
}

const taskRecordColumns = `id_registro, id_tarefa, descricao_atividade, resultado, data_execucao, id_responsavel, arquivo_key`

func (r *postgresTaskRecordRepository) scanRecord(row interface{ Scan(dest ...interface{}) error }, rec *models.TaskRecord) error {
	return row.Scan(
		&rec.ID,
		&rec.TaskID,
		&rec.Activity,
		&rec.Result,
		&rec.ExecutedAt,
		&rec.ResponsibleID,
		&rec.FileKey,
	)
}

func (r *postgresTaskRecordRepository) Create(ctx context.Context, record *models.TaskRecord) error {
	query := `
		INSERT INTO registro_tarefas (id_tarefa, descricao_atividade, resultado, data_execucao, id_responsavel, arquivo_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_registro`

	err := r.db.QueryRowContext(ctx, query,
		record.TaskID,
		record.Activity,
		record.Result,
		record.ExecutedAt,
		record.ResponsibleID,
		record.FileKey,
	).Scan(&record.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "registro_tarefas_id_tarefa_fkey":
				return ErrTaskRecordTaskInvalid
			case "registro_tarefas_id_responsavel_fkey":
				return ErrTaskRecordUserInvalid
			}
		}
		return fmt.Errorf("failed to create task record: %w", err)
	}
	return nil
}

func (r *postgresTaskRecordRepository) GetByID(ctx context.Context, id int) (*models.TaskRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM registro_tarefas WHERE id_registro = $1`, taskRecordColumns)
	rec := &models.TaskRecord{}
	if err := r.scanRecord(r.db.QueryRowContext(ctx, query, id), rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskRecordNotFound
		}
		return nil, fmt.Errorf("failed to get task record: %w", err)
	}
	return rec, nil
}

func (r *postgresTaskRecordRepository) ListByTask(ctx context.Context, taskID int) ([]*models.TaskRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM registro_tarefas WHERE id_tarefa = $1 ORDER BY data_execucao ASC`, taskRecordColumns)
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.TaskRecord, 0)
	for rows.Next() {
		var rec models.TaskRecord
		if err := r.scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan task record row: %w", err)
		}
		records = append(records, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task record rows: %w", err)
	}
	return records, nil
}

func (r *postgresTaskRecordRepository) Update(ctx context.Context, record *models.TaskRecord) error {
	query := `
		UPDATE registro_tarefas
		SET descricao_atividade = $1, resultado = $2, data_execucao = $3, arquivo_key = $4
		WHERE id_registro = $5`

	result, err := r.db.ExecContext(ctx, query,
		record.Activity,
		record.Result,
		record.ExecutedAt,
		record.FileKey,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task record: %w", err)
	}
	return checkAffectedRows(result, ErrTaskRecordNotFound)
}

func (r *postgresTaskRecordRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registro_tarefas WHERE id_registro = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task record: %w", err)
	}
	return checkAffectedRows(result, ErrTaskRecordNotFound)
}
