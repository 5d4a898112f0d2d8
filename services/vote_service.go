package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/uniexpo/fair-system/live"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type VoteService interface {
	// Vote casts the user's popular vote on a project. One vote per user per
	// project, enforced by the database.
	Vote(ctx context.Context, userID int, projectID int) (*models.PopularVote, error)
	GetByID(ctx context.Context, id int) (*models.PopularVote, error)
	List(ctx context.Context) ([]*models.PopularVote, error)
	TallyByEvent(ctx context.Context, eventID int) ([]models.VoteTally, error)
	Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error
}

type voteService struct {
	voteRepo    repositories.VoteRepository
	projectRepo repositories.ProjectRepository
	hub         *live.Hub
	logger      *slog.Logger
}

func NewVoteService(
	voteRepo repositories.VoteRepository,
	projectRepo repositories.ProjectRepository,
	hub *live.Hub,
	logger *slog.Logger,
) VoteService {
	return &voteService{
		voteRepo:    voteRepo,
		projectRepo: projectRepo,
		hub:         hub,
		logger:      logger,
	}
}

func (s *voteService) Vote(ctx context.Context, userID int, projectID int) (*models.PopularVote, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	vote := &models.PopularVote{
		ProjectID: projectID,
		UserID:    userID,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, repositories.ErrVoteConflict) {
			return nil, ErrVoteConflict
		}
		return nil, err
	}

	s.broadcastTally(ctx, project.EventID)
	return vote, nil
}

func (s *voteService) broadcastTally(ctx context.Context, eventID int) {
	if s.hub == nil {
		return
	}
	tallies, err := s.voteRepo.TallyByEvent(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to tally votes for broadcast",
			slog.Int("event_id", eventID), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToEvent(eventID, live.Message{
		Type:    live.MessageVoteTally,
		Payload: tallies,
	})
}

func (s *voteService) GetByID(ctx context.Context, id int) (*models.PopularVote, error) {
	return s.voteRepo.GetByID(ctx, id)
}

func (s *voteService) List(ctx context.Context) ([]*models.PopularVote, error) {
	return s.voteRepo.List(ctx)
}

func (s *voteService) TallyByEvent(ctx context.Context, eventID int) ([]models.VoteTally, error) {
	return s.voteRepo.TallyByEvent(ctx, eventID)
}

// Delete lets a user withdraw their own vote; administrators may remove any.
func (s *voteService) Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	vote, err := s.voteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && vote.UserID != actorID {
		return ErrForbidden
	}
	if err := s.voteRepo.Delete(ctx, id); err != nil {
		return err
	}
	if project, err := s.projectRepo.GetByID(ctx, vote.ProjectID); err == nil {
		s.broadcastTally(ctx, project.EventID)
	}
	return nil
}
