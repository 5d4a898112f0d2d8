package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uniexpo/fair-system/live"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type ReviewService interface {
	// Review records the verdict and moves the project to the same status in
	// one transaction, then notifies the owner and the event room.
	Review(ctx context.Context, reviewerID int, input ReviewInput) (*models.Review, error)
	GetByID(ctx context.Context, id int) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Review, error)
	Delete(ctx context.Context, id int) error
}

type ReviewInput struct {
	ProjectID int     `json:"id_projeto" validate:"required,min=1"`
	StatusID  int     `json:"id_situacao" validate:"required,min=1"`
	Feedback  *string `json:"feedback,omitempty"`
}

type reviewService struct {
	db          *sql.DB
	reviewRepo  repositories.ReviewRepository
	projectRepo repositories.ProjectRepository
	statusRepo  repositories.StatusRepository
	userRepo    repositories.UserRepository
	email       *EmailService
	hub         *live.Hub
	logger      *slog.Logger
}

func NewReviewService(
	db *sql.DB,
	reviewRepo repositories.ReviewRepository,
	projectRepo repositories.ProjectRepository,
	statusRepo repositories.StatusRepository,
	userRepo repositories.UserRepository,
	email *EmailService,
	hub *live.Hub,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
		statusRepo:  statusRepo,
		userRepo:    userRepo,
		email:       email,
		hub:         hub,
		logger:      logger,
	}
}

func (s *reviewService) Review(ctx context.Context, reviewerID int, input ReviewInput) (*models.Review, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	status, err := s.statusRepo.GetByID(ctx, input.StatusID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	review := &models.Review{
		ProjectID:  input.ProjectID,
		ReviewerID: reviewerID,
		StatusID:   input.StatusID,
		Feedback:   input.Feedback,
	}
	if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
		return nil, err
	}
	if err := s.projectRepo.UpdateStatus(ctx, tx, input.ProjectID, input.StatusID); err != nil {
		return nil, err
	}
	if status.Name == models.StatusApproved {
		now := time.Now()
		if err := s.projectRepo.SetApprovedAt(ctx, tx, input.ProjectID, &now); err != nil {
			return nil, err
		}
		project.ApprovedAt = &now
	}
	project.StatusID = input.StatusID

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	review.Status = status
	s.notify(ctx, project, status)
	return review, nil
}

func (s *reviewService) notify(ctx context.Context, project *models.Project, status *models.Status) {
	if s.hub != nil {
		s.hub.BroadcastToEvent(project.EventID, live.Message{
			Type: live.MessageProjectStatus,
			Payload: map[string]interface{}{
				"id_projeto":  project.ID,
				"id_situacao": status.ID,
				"situacao":    status.Name,
			},
		})
	}

	if s.email == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, project.OwnerID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load project owner for notification",
			slog.Int("project_id", project.ID), slog.Any("error", err))
		return
	}
	if err := s.email.SendProjectStatusEmail(owner.Email, project.Title, status.Name); err != nil {
		s.logger.WarnContext(ctx, "failed to send project status email",
			slog.Int("project_id", project.ID), slog.Any("error", err))
	}
}

func (s *reviewService) GetByID(ctx context.Context, id int) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *reviewService) List(ctx context.Context) ([]*models.Review, error) {
	return s.reviewRepo.List(ctx)
}

func (s *reviewService) ListByProject(ctx context.Context, projectID int) ([]*models.Review, error) {
	return s.reviewRepo.ListByProject(ctx, projectID)
}

func (s *reviewService) Delete(ctx context.Context, id int) error {
	return s.reviewRepo.Delete(ctx, id)
}
