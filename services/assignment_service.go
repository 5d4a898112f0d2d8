package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type AssignmentService interface {
	// Assign pairs an evaluator with a project. Repeating an existing pair
	// returns the current assignment instead of failing.
	Assign(ctx context.Context, input AssignInput) (*models.Assignment, error)
	GetByID(ctx context.Context, id int) (*models.Assignment, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Assignment, error)
	ListByEvaluator(ctx context.Context, evaluatorID int, statusFilter *models.AssignmentStatus) ([]*models.Assignment, error)
	Delete(ctx context.Context, id int) error
}

type AssignInput struct {
	ProjectID   int `json:"id_projeto" validate:"required,min=1"`
	EvaluatorID int `json:"id_avaliador" validate:"required,min=1"`
}

type assignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	userRepo       repositories.UserRepository
	logger         *slog.Logger
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *assignmentService) Assign(ctx context.Context, input AssignInput) (*models.Assignment, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	evaluator, err := s.userRepo.GetByID(ctx, input.EvaluatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, repositories.ErrAssignmentEvaluatorInvalid
		}
		return nil, err
	}
	if evaluator.RoleID != models.RoleEvaluator && evaluator.RoleID != models.RoleAdmin {
		return nil, fmt.Errorf("%w: user %d is not an evaluator", ErrValidationFailed, input.EvaluatorID)
	}

	assignment := &models.Assignment{
		ProjectID:   input.ProjectID,
		EvaluatorID: input.EvaluatorID,
		Status:      models.AssignmentPending,
	}
	err = s.assignmentRepo.CreateBounded(ctx, assignment, models.MaxAssignmentsPerProject)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentConflict) {
			// Idempotent: re-assigning an existing pair returns it unchanged.
			return s.assignmentRepo.GetByProjectAndEvaluator(ctx, input.ProjectID, input.EvaluatorID)
		}
		if errors.Is(err, repositories.ErrAssignmentLimit) {
			return nil, ErrAssignmentLimitReached
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "evaluator assigned to project",
		slog.Int("project_id", input.ProjectID), slog.Int("evaluator_id", input.EvaluatorID))
	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

func (s *assignmentService) ListByProject(ctx context.Context, projectID int) ([]*models.Assignment, error) {
	return s.assignmentRepo.ListByProject(ctx, projectID)
}

func (s *assignmentService) ListByEvaluator(ctx context.Context, evaluatorID int, statusFilter *models.AssignmentStatus) ([]*models.Assignment, error) {
	return s.assignmentRepo.ListByEvaluator(ctx, evaluatorID, statusFilter)
}

// Delete removes a pending assignment. Concluded ones stay: their evaluation
// is part of the project's record.
func (s *assignmentService) Delete(ctx context.Context, id int) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment.Status == models.AssignmentConcluded {
		return ErrAssignmentConcluded
	}
	return s.assignmentRepo.Delete(ctx, id)
}
