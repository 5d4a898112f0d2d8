package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type ProjectService interface {
	Create(ctx context.Context, ownerID int, input CreateProjectInput) (*models.Project, error)
	GetByID(ctx context.Context, id int) (*models.Project, error)
	List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error

	// Enroll adds a user to the project's team, enforcing the event's
	// submission window, its team capacity and the one-team-per-event rule.
	Enroll(ctx context.Context, projectID, userID int) (*models.TeamMember, error)
}

type CreateProjectInput struct {
	Title       string `json:"titulo" validate:"required,min=5,max=200"`
	Problem     string `json:"problema" validate:"required"`
	Relevance   string `json:"relevancia" validate:"required"`
	EventID     int    `json:"id_evento" validate:"required,min=1"`
	AdvisorID   int    `json:"id_orientador" validate:"required,min=1"`
	CoAdvisorID *int   `json:"id_coorientador,omitempty"`
}

type UpdateProjectInput struct {
	Title       *string `json:"titulo,omitempty" validate:"omitempty,min=5,max=200"`
	Problem     *string `json:"problema,omitempty"`
	Relevance   *string `json:"relevancia,omitempty"`
	AdvisorID   *int    `json:"id_orientador,omitempty"`
	CoAdvisorID *int    `json:"id_coorientador,omitempty"`
}

type projectService struct {
	projectRepo  repositories.ProjectRepository
	userRepo     repositories.UserRepository
	eventRepo    repositories.EventRepository
	teamRepo     repositories.TeamRepository
	statusRepo   repositories.StatusRepository
	advisorRoles []models.RoleID
	logger       *slog.Logger
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	teamRepo repositories.TeamRepository,
	statusRepo repositories.StatusRepository,
	advisorRoles []models.RoleID,
	logger *slog.Logger,
) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		teamRepo:     teamRepo,
		statusRepo:   statusRepo,
		advisorRoles: advisorRoles,
		logger:       logger,
	}
}

func (s *projectService) Create(ctx context.Context, ownerID int, input CreateProjectInput) (*models.Project, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !event.SubmissionOpen(time.Now()) {
		return nil, ErrEnrollmentClosed
	}

	if err := s.checkAdvisorEligible(ctx, input.AdvisorID); err != nil {
		return nil, err
	}
	if input.CoAdvisorID != nil {
		if err := s.checkAdvisorEligible(ctx, *input.CoAdvisorID); err != nil {
			return nil, err
		}
	}

	underReview, err := s.statusRepo.GetByName(ctx, models.StatusUnderReview)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve initial status: %w", err)
	}

	now := time.Now()
	project := &models.Project{
		OwnerID:     ownerID,
		Title:       input.Title,
		Problem:     input.Problem,
		Relevance:   input.Relevance,
		StatusID:    underReview.ID,
		EventID:     input.EventID,
		AdvisorID:   input.AdvisorID,
		CoAdvisorID: input.CoAdvisorID,
		SubmittedAt: &now,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	// The owner leads the team from the start.
	team, err := s.teamRepo.GetOrCreateByProject(ctx, nil, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create project team: %w", err)
	}
	member := &models.TeamMember{
		TeamID: team.ID,
		UserID: ownerID,
		Role:   models.MemberRoleLeader,
	}
	if err := s.teamRepo.AddMemberBounded(ctx, nil, member, event.MaxTeamSize); err != nil {
		return nil, fmt.Errorf("failed to enroll project owner: %w", err)
	}

	project.Status = underReview
	project.Event = event
	return project, nil
}

func (s *projectService) checkAdvisorEligible(ctx context.Context, advisorID int) error {
	advisor, err := s.userRepo.GetByID(ctx, advisorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return repositories.ErrProjectAdvisorInvalid
		}
		return err
	}
	for _, role := range s.advisorRoles {
		if advisor.RoleID == role {
			return nil
		}
	}
	return ErrAdvisorRoleNotAllowed
}

func (s *projectService) GetByID(ctx context.Context, id int) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateProjectDetails(ctx, project)
	return project, nil
}

func (s *projectService) List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		s.populateProjectDetails(ctx, p)
	}
	return projects, nil
}

func (s *projectService) Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateProjectInput) (*models.Project, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && project.OwnerID != actorID {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Problem != nil {
		project.Problem = *input.Problem
	}
	if input.Relevance != nil {
		project.Relevance = *input.Relevance
	}
	if input.AdvisorID != nil {
		if err := s.checkAdvisorEligible(ctx, *input.AdvisorID); err != nil {
			return nil, err
		}
		project.AdvisorID = *input.AdvisorID
	}
	if input.CoAdvisorID != nil {
		if err := s.checkAdvisorEligible(ctx, *input.CoAdvisorID); err != nil {
			return nil, err
		}
		project.CoAdvisorID = input.CoAdvisorID
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.populateProjectDetails(ctx, project)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && project.OwnerID != actorID {
		return ErrForbidden
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *projectService) Enroll(ctx context.Context, projectID, userID int) (*models.TeamMember, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, project.EventID)
	if err != nil {
		return nil, err
	}

	if !event.SubmissionOpen(time.Now()) {
		return nil, ErrEnrollmentClosed
	}

	enrolled, err := s.teamRepo.UserEnrolledInEvent(ctx, userID, project.EventID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolledInEvent
	}

	team, err := s.teamRepo.GetOrCreateByProject(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Role:   models.MemberRoleMember,
	}
	if err := s.teamRepo.AddMemberBounded(ctx, nil, member, event.MaxTeamSize); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamFull):
			return nil, ErrTeamFull
		case errors.Is(err, repositories.ErrMemberConflict):
			return nil, ErrAlreadyTeamMember
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user enrolled in project",
		slog.Int("project_id", projectID), slog.Int("user_id", userID), slog.Int("team_id", team.ID))
	return member, nil
}

// populateProjectDetails attaches owner, advisor, status, event and team to a
// project. Lookup failures are logged and leave the field nil.
func (s *projectService) populateProjectDetails(ctx context.Context, project *models.Project) {
	if project == nil {
		return
	}

	if owner, err := s.userRepo.GetByID(ctx, project.OwnerID); err == nil {
		owner.PasswordHash = ""
		project.Owner = owner
	} else {
		s.logger.WarnContext(ctx, "failed to populate project owner",
			slog.Int("project_id", project.ID), slog.Any("error", err))
	}

	if advisor, err := s.userRepo.GetByID(ctx, project.AdvisorID); err == nil {
		advisor.PasswordHash = ""
		project.Advisor = advisor
	} else {
		s.logger.WarnContext(ctx, "failed to populate project advisor",
			slog.Int("project_id", project.ID), slog.Any("error", err))
	}

	if status, err := s.statusRepo.GetByID(ctx, project.StatusID); err == nil {
		project.Status = status
	}

	if event, err := s.eventRepo.GetByID(ctx, project.EventID); err == nil {
		project.Event = event
	}

	if team, err := s.teamRepo.GetByProject(ctx, project.ID); err == nil {
		if members, err := s.teamRepo.ListMembers(ctx, team.ID); err == nil {
			ms := make([]models.TeamMember, 0, len(members))
			for _, m := range members {
				if m != nil {
					ms = append(ms, *m)
				}
			}
			team.Members = ms
		}
		project.Team = team
	}
}
