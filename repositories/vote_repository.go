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
	ErrVoteNotFound       = errors.New("popular vote not found")
	ErrVoteConflict       = errors.New("user has already voted for this project")
	ErrVoteProjectInvalid = errors.New("vote project conflict or invalid")
	ErrVoteUserInvalid    = errors.New("vote user conflict or invalid")
)

type VoteRepository interface {
	Create(ctx context.Context, vote *models.PopularVote) error
	GetByID(ctx context.Context, id int) (*models.PopularVote, error)
	List(ctx context.Context) ([]*models.PopularVote, error)
	CountByProject(ctx context.Context, projectID int) (int, error)
	TallyByEvent(ctx context.Context, eventID int) ([]models.VoteTally, error)
	Delete(ctx context.Context, id int) error
}

type postgresVoteRepository struct {
	db *sql.DB
}

func NewPostgresVoteRepository(db *sql.DB) VoteRepository {
	return &postgresVoteRepository{db: db}
}

func (r *postgresVoteRepository) Create(ctx context.Context, vote *models.PopularVote) error {
	query := `
		INSERT INTO votos_populares (id_projeto, id_usuario)
		VALUES ($1, $2)
		RETURNING id_voto, created_at`

	err := r.db.QueryRowContext(ctx, query, vote.ProjectID, vote.UserID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrVoteConflict
			case "23503":
				switch pqErr.Constraint {
				case "votos_populares_id_projeto_fkey":
					return ErrVoteProjectInvalid
				case "votos_populares_id_usuario_fkey":
					return ErrVoteUserInvalid
				}
			}
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

func (r *postgresVoteRepository) GetByID(ctx context.Context, id int) (*models.PopularVote, error) {
	query := `SELECT id_voto, id_projeto, id_usuario, created_at FROM votos_populares WHERE id_voto = $1`
	v := &models.PopularVote{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.ProjectID, &v.UserID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return v, nil
}

func (r *postgresVoteRepository) List(ctx context.Context) ([]*models.PopularVote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id_voto, id_projeto, id_usuario, created_at FROM votos_populares ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]*models.PopularVote, 0)
	for rows.Next() {
		var v models.PopularVote
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote row: %w", err)
		}
		votes = append(votes, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote rows: %w", err)
	}
	return votes, nil
}

func (r *postgresVoteRepository) CountByProject(ctx context.Context, projectID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votos_populares WHERE id_projeto = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (r *postgresVoteRepository) TallyByEvent(ctx context.Context, eventID int) ([]models.VoteTally, error) {
	query := `
		SELECT p.id_projeto, COUNT(v.id_voto)
		FROM projetos p
		LEFT JOIN votos_populares v ON v.id_projeto = p.id_projeto
		WHERE p.id_evento = $1
		GROUP BY p.id_projeto
		ORDER BY COUNT(v.id_voto) DESC, p.id_projeto ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	tallies := make([]models.VoteTally, 0)
	for rows.Next() {
		var t models.VoteTally
		if err := rows.Scan(&t.ProjectID, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally rows: %w", err)
	}
	return tallies, nil
}

func (r *postgresVoteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votos_populares WHERE id_voto = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return checkAffectedRows(result, ErrVoteNotFound)
}
