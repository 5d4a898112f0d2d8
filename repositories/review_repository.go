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
	ErrReviewNotFound        = errors.New("project review not found")
	ErrReviewProjectInvalid  = errors.New("review project conflict or invalid")
	ErrReviewReviewerInvalid = errors.New("review reviewer conflict or invalid")
	ErrReviewStatusInvalid   = errors.New("review status conflict or invalid")
)

type ReviewRepository interface {
	Create(ctx context.Context, exec SQLExecutor, review *models.Review) error
	GetByID(ctx context.Context, id int) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Review, error)
	Delete(ctx context.Context, id int) error
}

type postgresReviewRepository struct {
	db *sql.DB
}

func NewPostgresReviewRepository(db *sql.DB) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func (r *postgresReviewRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const reviewColumns = `id, id_projeto, id_avaliador, id_situacao, feedback, created_at`

func (r *postgresReviewRepository) scanReview(row interface{ Scan(dest ...interface{}) error }, rev *models.Review) error {
	return row.Scan(&rev.ID, &rev.ProjectID, &rev.ReviewerID, &rev.StatusID, &rev.Feedback, &rev.CreatedAt)
}

func (r *postgresReviewRepository) Create(ctx context.Context, exec SQLExecutor, review *models.Review) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO projeto_avaliacoes (id_projeto, id_avaliador, id_situacao, feedback)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		review.ProjectID,
		review.ReviewerID,
		review.StatusID,
		review.Feedback,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "projeto_avaliacoes_id_projeto_fkey":
				return ErrReviewProjectInvalid
			case "projeto_avaliacoes_id_avaliador_fkey":
				return ErrReviewReviewerInvalid
			case "projeto_avaliacoes_id_situacao_fkey":
				return ErrReviewStatusInvalid
			}
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *postgresReviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM projeto_avaliacoes WHERE id = $1`, reviewColumns)
	rev := &models.Review{}
	if err := r.scanReview(r.db.QueryRowContext(ctx, query, id), rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rev, nil
}

func (r *postgresReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM projeto_avaliacoes ORDER BY created_at DESC`, reviewColumns)
	return r.queryReviews(ctx, query)
}

func (r *postgresReviewRepository) ListByProject(ctx context.Context, projectID int) ([]*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM projeto_avaliacoes WHERE id_projeto = $1 ORDER BY created_at DESC`, reviewColumns)
	return r.queryReviews(ctx, query, projectID)
}

func (r *postgresReviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		var rev models.Review
		if err := r.scanReview(rows, &rev); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, &rev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projeto_avaliacoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return checkAffectedRows(result, ErrReviewNotFound)
}
