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
	ErrEvaluationNotFound        = errors.New("evaluation not found")
	ErrEvaluationConflict        = errors.New("an evaluation was already submitted for this assignment")
	ErrEvaluationQuestionInvalid = errors.New("evaluation answer references an invalid question")
)

type EvaluationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, evaluation *models.Evaluation) error
	CreateAnswers(ctx context.Context, exec SQLExecutor, evaluationID int, answers []models.Answer) error
	GetByID(ctx context.Context, id int) (*models.Evaluation, error)
	GetByAssignment(ctx context.Context, assignmentID int) (*models.Evaluation, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Evaluation, error)
	ListAnswers(ctx context.Context, evaluationID int) ([]models.Answer, error)
	Delete(ctx context.Context, id int) error
}

type postgresEvaluationRepository struct {
	db *sql.DB
}

func NewPostgresEvaluationRepository(db *sql.DB) EvaluationRepository {
	return &postgresEvaluationRepository{db: db}
}

func (r *postgresEvaluationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEvaluationRepository) Create(ctx context.Context, exec SQLExecutor, evaluation *models.Evaluation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO avaliacoes (id_avaliador_projeto, nota_geral, observacoes)
		VALUES ($1, $2, $3)
		RETURNING id_avaliacao, created_at`

	err := executor.QueryRowContext(ctx, query,
		evaluation.AssignmentID,
		evaluation.OverallScore,
		evaluation.Remarks,
	).Scan(&evaluation.ID, &evaluation.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEvaluationConflict
		}
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *postgresEvaluationRepository) CreateAnswers(ctx context.Context, exec SQLExecutor, evaluationID int, answers []models.Answer) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO respostas_avaliacao (id_avaliacao, id_pergunta, valor_resposta)
		VALUES ($1, $2, $3)
		RETURNING id_resposta`

	for i := range answers {
		answers[i].EvaluationID = evaluationID
		err := executor.QueryRowContext(ctx, query,
			evaluationID,
			answers[i].QuestionID,
			answers[i].Value,
		).Scan(&answers[i].ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" && pqErr.Constraint == "respostas_avaliacao_id_pergunta_fkey" {
				return ErrEvaluationQuestionInvalid
			}
			return fmt.Errorf("failed to create answer for question %d: %w", answers[i].QuestionID, err)
		}
	}
	return nil
}

const evaluationColumns = `id_avaliacao, id_avaliador_projeto, nota_geral, observacoes, created_at`

func (r *postgresEvaluationRepository) scanEvaluation(row interface{ Scan(dest ...interface{}) error }, e *models.Evaluation) error {
	return row.Scan(&e.ID, &e.AssignmentID, &e.OverallScore, &e.Remarks, &e.CreatedAt)
}

func (r *postgresEvaluationRepository) GetByID(ctx context.Context, id int) (*models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM avaliacoes WHERE id_avaliacao = $1`, evaluationColumns)
	e := &models.Evaluation{}
	if err := r.scanEvaluation(r.db.QueryRowContext(ctx, query, id), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return e, nil
}

func (r *postgresEvaluationRepository) GetByAssignment(ctx context.Context, assignmentID int) (*models.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM avaliacoes WHERE id_avaliador_projeto = $1`, evaluationColumns)
	e := &models.Evaluation{}
	if err := r.scanEvaluation(r.db.QueryRowContext(ctx, query, assignmentID), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation by assignment: %w", err)
	}
	return e, nil
}

func (r *postgresEvaluationRepository) ListByProject(ctx context.Context, projectID int) ([]*models.Evaluation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM avaliacoes e
		JOIN avaliador_projeto a ON a.id = e.id_avaliador_projeto
		WHERE a.id_projeto = $1
		ORDER BY e.created_at ASC`,
		prefixColumns("e", evaluationColumns))

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations by project: %w", err)
	}
	defer rows.Close()

	evaluations := make([]*models.Evaluation, 0)
	for rows.Next() {
		var e models.Evaluation
		if err := r.scanEvaluation(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
		}
		evaluations = append(evaluations, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation rows: %w", err)
	}
	return evaluations, nil
}

func (r *postgresEvaluationRepository) ListAnswers(ctx context.Context, evaluationID int) ([]models.Answer, error) {
	query := `SELECT id_resposta, id_avaliacao, id_pergunta, valor_resposta FROM respostas_avaliacao WHERE id_avaliacao = $1 ORDER BY id_resposta ASC`
	rows, err := r.db.QueryContext(ctx, query, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	answers := make([]models.Answer, 0)
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.EvaluationID, &a.QuestionID, &a.Value); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}
	return answers, nil
}

// Delete cascades to the evaluation's answers.
func (r *postgresEvaluationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM avaliacoes WHERE id_avaliacao = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return checkAffectedRows(result, ErrEvaluationNotFound)
}
