package services

import (
	"context"
	"errors"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type TeamService interface {
	GetByProject(ctx context.Context, projectID int) (*models.Team, error)
	ListMembers(ctx context.Context, teamID int) ([]*models.TeamMember, error)
	PromoteMember(ctx context.Context, memberID int, actorID int, actorRole models.RoleID) error
	RemoveMember(ctx context.Context, memberID int, actorID int, actorRole models.RoleID) error
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	projectRepo repositories.ProjectRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, projectRepo repositories.ProjectRepository) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
	}
}

func (s *teamService) GetByProject(ctx context.Context, projectID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	ms := make([]models.TeamMember, 0, len(members))
	for _, m := range members {
		if m != nil {
			m.User.PasswordHash = ""
			ms = append(ms, *m)
		}
	}
	team.Members = ms
	return team, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID int) ([]*models.TeamMember, error) {
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.User != nil {
			m.User.PasswordHash = ""
		}
	}
	return members, nil
}

// PromoteMember hands team leadership to another member. Only the project
// owner or an administrator may do it.
func (s *teamService) PromoteMember(ctx context.Context, memberID int, actorID int, actorRole models.RoleID) error {
	member, err := s.teamRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if err := s.authorizeTeamAction(ctx, member.TeamID, actorID, actorRole); err != nil {
		return err
	}
	return s.teamRepo.UpdateMemberRole(ctx, memberID, models.MemberRoleLeader)
}

// RemoveMember drops a member from the team. Members may leave on their own;
// otherwise the project owner or an administrator decides.
func (s *teamService) RemoveMember(ctx context.Context, memberID int, actorID int, actorRole models.RoleID) error {
	member, err := s.teamRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.UserID != actorID {
		if err := s.authorizeTeamAction(ctx, member.TeamID, actorID, actorRole); err != nil {
			return err
		}
	}
	return s.teamRepo.RemoveMember(ctx, memberID)
}

func (s *teamService) authorizeTeamAction(ctx context.Context, teamID int, actorID int, actorRole models.RoleID) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	project, err := s.projectRepo.GetByID(ctx, team.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return ErrForbidden
		}
		return err
	}
	if project.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
