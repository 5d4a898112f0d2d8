package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type EvaluationService interface {
	// Submit stores the evaluation with its answers and concludes the
	// assignment, all in one transaction.
	Submit(ctx context.Context, evaluatorID int, input SubmitEvaluationInput) (*models.Evaluation, error)
	GetByID(ctx context.Context, id int) (*models.Evaluation, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Evaluation, error)
	Delete(ctx context.Context, id int) error
}

type SubmitEvaluationInput struct {
	AssignmentID int           `json:"id_avaliador_projeto" validate:"required,min=1"`
	OverallScore float64       `json:"nota_geral" validate:"min=0,max=100"`
	Remarks      *string       `json:"observacoes,omitempty"`
	Answers      []AnswerInput `json:"respostas" validate:"required,min=1,dive"`
}

type AnswerInput struct {
	QuestionID int `json:"id_pergunta" validate:"required,min=1"`
	Value      int `json:"valor_resposta" validate:"min=0,max=10"`
}

type evaluationService struct {
	db             *sql.DB
	evaluationRepo repositories.EvaluationRepository
	assignmentRepo repositories.AssignmentRepository
	logger         *slog.Logger
}

func NewEvaluationService(
	db *sql.DB,
	evaluationRepo repositories.EvaluationRepository,
	assignmentRepo repositories.AssignmentRepository,
	logger *slog.Logger,
) EvaluationService {
	return &evaluationService{
		db:             db,
		evaluationRepo: evaluationRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (s *evaluationService) Submit(ctx context.Context, evaluatorID int, input SubmitEvaluationInput) (*models.Evaluation, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if len(input.Answers) == 0 {
		return nil, ErrEvaluationAnswersRequired
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, input.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.EvaluatorID != evaluatorID {
		return nil, ErrEvaluationNotAssigned
	}
	if assignment.Status == models.AssignmentConcluded {
		return nil, ErrEvaluationAlreadySubmitted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	evaluation := &models.Evaluation{
		AssignmentID: assignment.ID,
		OverallScore: input.OverallScore,
		Remarks:      input.Remarks,
	}
	if err := s.evaluationRepo.Create(ctx, tx, evaluation); err != nil {
		if errors.Is(err, repositories.ErrEvaluationConflict) {
			return nil, ErrEvaluationAlreadySubmitted
		}
		return nil, err
	}

	answers := make([]models.Answer, len(input.Answers))
	for i, a := range input.Answers {
		answers[i] = models.Answer{QuestionID: a.QuestionID, Value: a.Value}
	}
	if err := s.evaluationRepo.CreateAnswers(ctx, tx, evaluation.ID, answers); err != nil {
		return nil, err
	}
	evaluation.Answers = answers

	if err := s.assignmentRepo.UpdateStatus(ctx, tx, assignment.ID, models.AssignmentConcluded); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit evaluation: %w", err)
	}

	s.logger.InfoContext(ctx, "evaluation submitted",
		slog.Int("project_id", assignment.ProjectID),
		slog.Int("evaluator_id", evaluatorID),
		slog.Int("evaluation_id", evaluation.ID))
	return evaluation, nil
}

func (s *evaluationService) GetByID(ctx context.Context, id int) (*models.Evaluation, error) {
	evaluation, err := s.evaluationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := s.evaluationRepo.ListAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	evaluation.Answers = answers
	return evaluation, nil
}

func (s *evaluationService) ListByProject(ctx context.Context, projectID int) ([]*models.Evaluation, error) {
	evaluations, err := s.evaluationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, e := range evaluations {
		answers, err := s.evaluationRepo.ListAnswers(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Answers = answers
	}
	return evaluations, nil
}

func (s *evaluationService) Delete(ctx context.Context, id int) error {
	return s.evaluationRepo.Delete(ctx, id)
}
