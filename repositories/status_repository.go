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
	ErrStatusNotFound     = errors.New("status not found")
	ErrStatusNameConflict = errors.New("status name is already in use")
	ErrStatusInUse        = errors.New("status is referenced by other records and cannot be deleted")
)

type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, id int) (*models.Status, error)
	GetByName(ctx context.Context, name string) (*models.Status, error)
	List(ctx context.Context) ([]*models.Status, error)
	Update(ctx context.Context, status *models.Status) error
	Delete(ctx context.Context, id int) error
}

type postgresStatusRepository struct {
	db *sql.DB
}

func NewPostgresStatusRepository(db *sql.DB) StatusRepository {
	return &postgresStatusRepository{db: db}
}

func (r *postgresStatusRepository) Create(ctx context.Context, status *models.Status) error {
	query := `INSERT INTO situacao (situacao) VALUES ($1) RETURNING id_situacao`
	err := r.db.QueryRowContext(ctx, query, status.Name).Scan(&status.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrStatusNameConflict
		}
		return fmt.Errorf("failed to create status: %w", err)
	}
	return nil
}

func (r *postgresStatusRepository) GetByID(ctx context.Context, id int) (*models.Status, error) {
	query := `SELECT id_situacao, situacao FROM situacao WHERE id_situacao = $1`
	s := &models.Status{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return s, nil
}

func (r *postgresStatusRepository) GetByName(ctx context.Context, name string) (*models.Status, error) {
	query := `SELECT id_situacao, situacao FROM situacao WHERE situacao = $1`
	s := &models.Status{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get status by name: %w", err)
	}
	return s, nil
}

func (r *postgresStatusRepository) List(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id_situacao, situacao FROM situacao ORDER BY id_situacao ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]*models.Status, 0)
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}
	return statuses, nil
}

func (r *postgresStatusRepository) Update(ctx context.Context, status *models.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE situacao SET situacao = $1 WHERE id_situacao = $2`, status.Name, status.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrStatusNameConflict
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	return checkAffectedRows(result, ErrStatusNotFound)
}

func (r *postgresStatusRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM situacao WHERE id_situacao = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrStatusInUse
		}
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return checkAffectedRows(result, ErrStatusNotFound)
}
