package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uniexpo/fair-system/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int) error
	DeactivateExpired(ctx context.Context, now time.Time) ([]int, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id_evento, nome, ativo, data_evento, inicio_submissao, fim_submissao, min_pessoas, max_pessoas, created_at`

func (r *postgresEventRepository) scanEvent(row interface{ Scan(dest ...interface{}) error }, e *models.Event) error {
	return row.Scan(
		&e.ID,
		&e.Name,
		&e.Active,
		&e.EventDate,
		&e.SubmissionStart,
		&e.SubmissionEnd,
		&e.MinTeamSize,
		&e.MaxTeamSize,
		&e.CreatedAt,
	)
}

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO eventos (nome, ativo, data_evento, inicio_submissao, fim_submissao, min_pessoas, max_pessoas)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_evento, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Active,
		event.EventDate,
		event.SubmissionStart,
		event.SubmissionEnd,
		event.MinTeamSize,
		event.MaxTeamSize,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM eventos WHERE id_evento = $1`, eventColumns)
	e := &models.Event{}
	if err := r.scanEvent(r.db.QueryRowContext(ctx, query, id), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (r *postgresEventRepository) List(ctx context.Context, activeOnly bool) ([]*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM eventos`, eventColumns)
	if activeOnly {
		query += ` WHERE ativo = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := r.scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE eventos
		SET nome = $1, ativo = $2, data_evento = $3, inicio_submissao = $4,
		    fim_submissao = $5, min_pessoas = $6, max_pessoas = $7
		WHERE id_evento = $8`

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.Active,
		event.EventDate,
		event.SubmissionStart,
		event.SubmissionEnd,
		event.MinTeamSize,
		event.MaxTeamSize,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM eventos WHERE id_evento = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

// DeactivateExpired flips ativo off for events whose submission window has
// closed, returning the affected ids. Used by the background scheduler.
func (r *postgresEventRepository) DeactivateExpired(ctx context.Context, now time.Time) ([]int, error) {
	query := `
		UPDATE eventos
		SET ativo = FALSE
		WHERE ativo = TRUE AND fim_submissao IS NOT NULL AND fim_submissao < $1
		RETURNING id_evento`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate expired events: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan event id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event ids: %w", err)
	}
	return ids, nil
}
