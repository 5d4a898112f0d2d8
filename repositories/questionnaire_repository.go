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
	ErrQuestionnaireNotFound     = errors.New("questionnaire not found")
	ErrQuestionnaireEventInvalid = errors.New("questionnaire event conflict or invalid")
	ErrQuestionNotFound          = errors.New("question not found")
	ErrQuestionParentInvalid     = errors.New("question questionnaire conflict or invalid")
)

type QuestionnaireRepository interface {
	Create(ctx context.Context, q *models.Questionnaire) error
	GetByID(ctx context.Context, id int) (*models.Questionnaire, error)
	ListByEvent(ctx context.Context, eventID int, activeOnly bool) ([]*models.Questionnaire, error)
	Update(ctx context.Context, q *models.Questionnaire) error
	Delete(ctx context.Context, id int) error

	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestionByID(ctx context.Context, id int) (*models.Question, error)
	ListQuestions(ctx context.Context, questionnaireID int) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id int) error
}

type postgresQuestionnaireRepository struct {
	db *sql.DB
}

func NewPostgresQuestionnaireRepository(db *sql.DB) QuestionnaireRepository {
	return &postgresQuestionnaireRepository{db: db}
}

func (r *postgresQuestionnaireRepository) Create(ctx context.Context, q *models.Questionnaire) error {
	query := `
		INSERT INTO questionarios (id_evento, titulo, ativo)
		VALUES ($1, $2, $3)
		RETURNING id_questionario, created_at`

	err := r.db.QueryRowContext(ctx, query, q.EventID, q.Title, q.Active).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrQuestionnaireEventInvalid
		}
		return fmt.Errorf("failed to create questionnaire: %w", err)
	}
	return nil
}

func (r *postgresQuestionnaireRepository) GetByID(ctx context.Context, id int) (*models.Questionnaire, error) {
	query := `SELECT id_questionario, id_evento, titulo, ativo, created_at FROM questionarios WHERE id_questionario = $1`
	q := &models.Questionnaire{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.EventID, &q.Title, &q.Active, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}
	return q, nil
}

func (r *postgresQuestionnaireRepository) ListByEvent(ctx context.Context, eventID int, activeOnly bool) ([]*models.Questionnaire, error) {
	query := `SELECT id_questionario, id_evento, titulo, ativo, created_at FROM questionarios WHERE id_evento = $1`
	if activeOnly {
		query += ` AND ativo = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaires: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Questionnaire, 0)
	for rows.Next() {
		var q models.Questionnaire
		if err := rows.Scan(&q.ID, &q.EventID, &q.Title, &q.Active, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan questionnaire row: %w", err)
		}
		items = append(items, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questionnaire rows: %w", err)
	}
	return items, nil
}

func (r *postgresQuestionnaireRepository) Update(ctx context.Context, q *models.Questionnaire) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE questionarios SET titulo = $1, ativo = $2 WHERE id_questionario = $3`,
		q.Title, q.Active, q.ID)
	if err != nil {
		return fmt.Errorf("failed to update questionnaire: %w", err)
	}
	return checkAffectedRows(result, ErrQuestionnaireNotFound)
}

// Delete cascades to the questionnaire's questions.
func (r *postgresQuestionnaireRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questionarios WHERE id_questionario = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete questionnaire: %w", err)
	}
	return checkAffectedRows(result, ErrQuestionnaireNotFound)
}

func (r *postgresQuestionnaireRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO perguntas_questionario (id_questionario, criterio, texto_pergunta, ordem)
		VALUES ($1, $2, $3, $4)
		RETURNING id_pergunta`

	err := r.db.QueryRowContext(ctx, query,
		question.QuestionnaireID,
		question.Criterion,
		question.Text,
		question.Order,
	).Scan(&question.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrQuestionParentInvalid
		}
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *postgresQuestionnaireRepository) GetQuestionByID(ctx context.Context, id int) (*models.Question, error) {
	query := `SELECT id_pergunta, id_questionario, criterio, texto_pergunta, ordem FROM perguntas_questionario WHERE id_pergunta = $1`
	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.QuestionnaireID, &q.Criterion, &q.Text, &q.Order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

func (r *postgresQuestionnaireRepository) ListQuestions(ctx context.Context, questionnaireID int) ([]models.Question, error) {
	query := `SELECT id_pergunta, id_questionario, criterio, texto_pergunta, ordem FROM perguntas_questionario WHERE id_questionario = $1 ORDER BY ordem ASC`
	rows, err := r.db.QueryContext(ctx, query, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionnaireID, &q.Criterion, &q.Text, &q.Order); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}
	return questions, nil
}

func (r *postgresQuestionnaireRepository) UpdateQuestion(ctx context.Context, question *models.Question) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE perguntas_questionario SET criterio = $1, texto_pergunta = $2, ordem = $3 WHERE id_pergunta = $4`,
		question.Criterion, question.Text, question.Order, question.ID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return checkAffectedRows(result, ErrQuestionNotFound)
}

func (r *postgresQuestionnaireRepository) DeleteQuestion(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM perguntas_questionario WHERE id_pergunta = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return checkAffectedRows(result, ErrQuestionNotFound)
}
