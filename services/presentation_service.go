package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/storage"
)

type PresentationService interface {
	// Upload stores the project's presentation PDF and records the submission.
	Upload(ctx context.Context, projectID int, actorID int, actorRole models.RoleID, contentType string, reader io.Reader) (*models.Presentation, error)
	GetByID(ctx context.Context, id int) (*models.Presentation, error)
	ListByProject(ctx context.Context, projectID int) ([]*models.Presentation, error)
	Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error
}

type presentationService struct {
	presentationRepo repositories.PresentationRepository
	projectRepo      repositories.ProjectRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewPresentationService(
	presentationRepo repositories.PresentationRepository,
	projectRepo repositories.ProjectRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) PresentationService {
	return &presentationService{
		presentationRepo: presentationRepo,
		projectRepo:      projectRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

func (s *presentationService) Upload(ctx context.Context, projectID int, actorID int, actorRole models.RoleID, contentType string, reader io.Reader) (*models.Presentation, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && project.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if contentType != "application/pdf" {
		return nil, fmt.Errorf("%w: presentations must be PDF, got %s", ErrUnsupportedFileType, contentType)
	}

	key := fmt.Sprintf("apresentacoes/%d/%s.pdf", projectID, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload presentation: %w", err)
	}

	presentation := &models.Presentation{
		ProjectID:   projectID,
		SubmittedAt: time.Now(),
		FileKey:     key,
	}
	if err := s.presentationRepo.Create(ctx, presentation); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned presentation file",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}

	s.populateFileURL(presentation)
	return presentation, nil
}

func (s *presentationService) GetByID(ctx context.Context, id int) (*models.Presentation, error) {
	presentation, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateFileURL(presentation)
	return presentation, nil
}

func (s *presentationService) ListByProject(ctx context.Context, projectID int) ([]*models.Presentation, error) {
	presentations, err := s.presentationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, p := range presentations {
		s.populateFileURL(p)
	}
	return presentations, nil
}

func (s *presentationService) Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	presentation, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	project, err := s.projectRepo.GetByID(ctx, presentation.ProjectID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && project.OwnerID != actorID {
		return ErrForbidden
	}

	if err := s.presentationRepo.Delete(ctx, id); err != nil {
		return err
	}
	if presentation.FileKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, presentation.FileKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete presentation file from storage",
				slog.Int("presentation_id", id), slog.String("key", presentation.FileKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *presentationService) populateFileURL(p *models.Presentation) {
	if p == nil || p.FileKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(p.FileKey)
	if url != "" {
		p.FileURL = &url
	}
}
