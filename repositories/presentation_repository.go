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
	ErrPresentationNotFound       = errors.New("presentation not found")
	ErrPresentationProjectInvalid = errors.New("presentation project conflict or invalid")
)

type PresentationRepository interface {
	Create(ctx context.Context, presentation *models.Presentation) error
	GetByID(ctx context.Context, id int) (*models.Presentation, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Presentation, error)
	Delete(ctx context.Context, id int) error
}

type postgresPresentationRepository struct {
	db *sql.DB
}

func NewPostgresPresentationRepository(db *sql.DB) PresentationRepository {
	return &postgresPresentationRepository{db: db}
}

func (r *postgresPresentationRepository) Create(ctx context.Context, presentation *models.Presentation) error {
	query := `
		INSERT INTO apresentacao_projetos (id_projeto, arquivo_pdf, data_envio)
		VALUES ($1, $2, $3)
		RETURNING id_apresentacao`

	err := r.db.QueryRowContext(ctx, query,
		presentation.ProjectID,
		presentation.FileKey,
		presentation.SubmittedAt,
	).Scan(&presentation.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPresentationProjectInvalid
		}
		return fmt.Errorf("failed to create presentation: %w", err)
	}
	return nil
}

func (r *postgresPresentationRepository) GetByID(ctx context.Context, id int) (*models.Presentation, error) {
	query := `SELECT id_apresentacao, id_projeto, arquivo_pdf, data_envio FROM apresentacao_projetos WHERE id_apresentacao = $1`
	p := &models.Presentation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.ProjectID, &p.FileKey, &p.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresentationNotFound
		}
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}
	return p, nil
}

func (r *postgresPresentationRepository) ListByProject(ctx context.Context, projectID int) ([]*models.Presentation, error) {
	query := `SELECT id_apresentacao, id_projeto, arquivo_pdf, data_envio FROM apresentacao_projetos WHERE id_projeto = $1 ORDER BY data_envio DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	presentations := make([]*models.Presentation, 0)
	for rows.Next() {
		var p models.Presentation
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.FileKey, &p.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan presentation row: %w", err)
		}
		presentations = append(presentations, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presentation rows: %w", err)
	}
	return presentations, nil
}

func (r *postgresPresentationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM apresentacao_projetos WHERE id_apresentacao = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete presentation: %w", err)
	}
	return checkAffectedRows(result, ErrPresentationNotFound)
}
