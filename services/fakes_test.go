package services

import (
	"context"
	"time"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

// In-memory repository fakes shared by the service tests. They mirror the
// database guards (unique indexes, bounded inserts) closely enough to
// exercise the service logic.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	clone := *user
	r.add(&clone)
	user.ID = clone.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, roleFilter *models.RoleID) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if roleFilter != nil && u.RoleID != *roleFilter {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByTeam(_ context.Context, _ int) ([]*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id int, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) UpdatePhotoKey(_ context.Context, id int, key *string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PhotoKey = key
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeEventRepo struct {
	events map[int]*models.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int]*models.Event), nextID: 1}
}

func (r *fakeEventRepo) add(event *models.Event) *models.Event {
	if event.ID == 0 {
		event.ID = r.nextID
	}
	if event.ID >= r.nextID {
		r.nextID = event.ID + 1
	}
	r.events[event.ID] = event
	return event
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.add(event)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) List(_ context.Context, activeOnly bool) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range r.events {
		if activeOnly && !e.Active {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) DeactivateExpired(_ context.Context, now time.Time) ([]int, error) {
	var closed []int
	for _, e := range r.events {
		if e.Active && e.SubmissionEnd != nil && now.After(*e.SubmissionEnd) {
			e.Active = false
			closed = append(closed, e.ID)
		}
	}
	return closed, nil
}

type fakeStatusRepo struct {
	statuses map[int]*models.Status
	nextID   int
}

func newFakeStatusRepo(names ...string) *fakeStatusRepo {
	r := &fakeStatusRepo{statuses: make(map[int]*models.Status), nextID: 1}
	for _, name := range names {
		r.Create(context.Background(), &models.Status{Name: name})
	}
	return r
}

func (r *fakeStatusRepo) Create(_ context.Context, status *models.Status) error {
	for _, s := range r.statuses {
		if s.Name == status.Name {
			return repositories.ErrStatusNameConflict
		}
	}
	status.ID = r.nextID
	r.nextID++
	r.statuses[status.ID] = status
	return nil
}

func (r *fakeStatusRepo) GetByID(_ context.Context, id int) (*models.Status, error) {
	status, ok := r.statuses[id]
	if !ok {
		return nil, repositories.ErrStatusNotFound
	}
	clone := *status
	return &clone, nil
}

func (r *fakeStatusRepo) GetByName(_ context.Context, name string) (*models.Status, error) {
	for _, s := range r.statuses {
		if s.Name == name {
			clone := *s
			return &clone, nil
		}
	}
	return nil, repositories.ErrStatusNotFound
}

func (r *fakeStatusRepo) List(_ context.Context) ([]*models.Status, error) {
	var out []*models.Status
	for _, s := range r.statuses {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeStatusRepo) Update(_ context.Context, status *models.Status) error {
	if _, ok := r.statuses[status.ID]; !ok {
		return repositories.ErrStatusNotFound
	}
	clone := *status
	r.statuses[status.ID] = &clone
	return nil
}

func (r *fakeStatusRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.statuses[id]; !ok {
		return repositories.ErrStatusNotFound
	}
	delete(r.statuses, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[int]*models.Project
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int]*models.Project), nextID: 1}
}

func (r *fakeProjectRepo) add(project *models.Project) *models.Project {
	if project.ID == 0 {
		project.ID = r.nextID
	}
	if project.ID >= r.nextID {
		r.nextID = project.ID + 1
	}
	r.projects[project.ID] = project
	return project
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.add(project)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrProjectNotFound
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) List(_ context.Context, _ models.ProjectFilter) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range r.projects {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return repositories.ErrProjectNotFound
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, statusID int) error {
	project, ok := r.projects[id]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	project.StatusID = statusID
	return nil
}

func (r *fakeProjectRepo) SetApprovedAt(_ context.Context, _ repositories.SQLExecutor, id int, approvedAt *time.Time) error {
	project, ok := r.projects[id]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	project.ApprovedAt = approvedAt
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.projects[id]; !ok {
		return repositories.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeTeamRepo struct {
	projects     *fakeProjectRepo
	teams        map[int]*models.Team
	members      map[int]*models.TeamMember
	nextTeamID   int
	nextMemberID int
}

func newFakeTeamRepo(projects *fakeProjectRepo) *fakeTeamRepo {
	return &fakeTeamRepo{
		projects:     projects,
		teams:        make(map[int]*models.Team),
		members:      make(map[int]*models.TeamMember),
		nextTeamID:   1,
		nextMemberID: 1,
	}
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) GetByProject(_ context.Context, projectID int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ProjectID == projectID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetOrCreateByProject(ctx context.Context, _ repositories.SQLExecutor, projectID int) (*models.Team, error) {
	if team, err := r.GetByProject(ctx, projectID); err == nil {
		return team, nil
	}
	team := &models.Team{ID: r.nextTeamID, ProjectID: projectID, CreatedAt: time.Now()}
	r.nextTeamID++
	r.teams[team.ID] = team
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) AddMemberBounded(_ context.Context, _ repositories.SQLExecutor, member *models.TeamMember, maxMembers int) error {
	count := 0
	for _, m := range r.members {
		if m.TeamID == member.TeamID {
			if m.UserID == member.UserID {
				return repositories.ErrMemberConflict
			}
			count++
		}
	}
	if count >= maxMembers {
		return repositories.ErrTeamFull
	}
	member.ID = r.nextMemberID
	r.nextMemberID++
	member.CreatedAt = time.Now()
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) ListMembers(_ context.Context, teamID int) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	for _, m := range r.members {
		if m.TeamID == teamID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) GetMemberByID(_ context.Context, memberID int) (*models.TeamMember, error) {
	member, ok := r.members[memberID]
	if !ok {
		return nil, repositories.ErrMemberNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *fakeTeamRepo) UpdateMemberRole(_ context.Context, memberID int, role models.MemberRole) error {
	member, ok := r.members[memberID]
	if !ok {
		return repositories.ErrMemberNotFound
	}
	member.Role = role
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, memberID int) error {
	if _, ok := r.members[memberID]; !ok {
		return repositories.ErrMemberNotFound
	}
	delete(r.members, memberID)
	return nil
}

func (r *fakeTeamRepo) UserEnrolledInEvent(_ context.Context, userID, eventID int) (bool, error) {
	for _, m := range r.members {
		if m.UserID != userID {
			continue
		}
		team, ok := r.teams[m.TeamID]
		if !ok {
			continue
		}
		project, ok := r.projects.projects[team.ProjectID]
		if ok && project.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) IsMember(_ context.Context, teamID, userID int) (bool, error) {
	for _, m := range r.members {
		if m.TeamID == teamID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAssignmentRepo struct {
	assignments map[int]*models.Assignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[int]*models.Assignment), nextID: 1}
}

func (r *fakeAssignmentRepo) CreateBounded(_ context.Context, assignment *models.Assignment, maxPerProject int) error {
	count := 0
	for _, a := range r.assignments {
		if a.ProjectID == assignment.ProjectID {
			if a.EvaluatorID == assignment.EvaluatorID {
				return repositories.ErrAssignmentConflict
			}
			count++
		}
	}
	if count >= maxPerProject {
		return repositories.ErrAssignmentLimit
	}
	assignment.ID = r.nextID
	r.nextID++
	assignment.CreatedAt = time.Now()
	clone := *assignment
	r.assignments[assignment.ID] = &clone
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id int) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repositories.ErrAssignmentNotFound
	}
	clone := *assignment
	return &clone, nil
}

func (r *fakeAssignmentRepo) GetByProjectAndEvaluator(_ context.Context, projectID, evaluatorID int) (*models.Assignment, error) {
	for _, a := range r.assignments {
		if a.ProjectID == projectID && a.EvaluatorID == evaluatorID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repositories.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) ListByProject(_ context.Context, projectID int) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListByEvaluator(_ context.Context, evaluatorID int, statusFilter *models.AssignmentStatus) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.assignments {
		if a.EvaluatorID != evaluatorID {
			continue
		}
		if statusFilter != nil && a.Status != *statusFilter {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.AssignmentStatus) error {
	assignment, ok := r.assignments[id]
	if !ok {
		return repositories.ErrAssignmentNotFound
	}
	assignment.Status = status
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.assignments[id]; !ok {
		return repositories.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

type fakeVoteRepo struct {
	projects *fakeProjectRepo
	votes    map[int]*models.PopularVote
	nextID   int
}

func newFakeVoteRepo(projects *fakeProjectRepo) *fakeVoteRepo {
	return &fakeVoteRepo{projects: projects, votes: make(map[int]*models.PopularVote), nextID: 1}
}

func (r *fakeVoteRepo) Create(_ context.Context, vote *models.PopularVote) error {
	for _, v := range r.votes {
		if v.ProjectID == vote.ProjectID && v.UserID == vote.UserID {
			return repositories.ErrVoteConflict
		}
	}
	vote.ID = r.nextID
	r.nextID++
	vote.CreatedAt = time.Now()
	clone := *vote
	r.votes[vote.ID] = &clone
	return nil
}

func (r *fakeVoteRepo) GetByID(_ context.Context, id int) (*models.PopularVote, error) {
	vote, ok := r.votes[id]
	if !ok {
		return nil, repositories.ErrVoteNotFound
	}
	clone := *vote
	return &clone, nil
}

func (r *fakeVoteRepo) List(_ context.Context) ([]*models.PopularVote, error) {
	var out []*models.PopularVote
	for _, v := range r.votes {
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeVoteRepo) CountByProject(_ context.Context, projectID int) (int, error) {
	count := 0
	for _, v := range r.votes {
		if v.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r *fakeVoteRepo) TallyByEvent(_ context.Context, eventID int) ([]models.VoteTally, error) {
	counts := make(map[int]int)
	for _, v := range r.votes {
		project, ok := r.projects.projects[v.ProjectID]
		if ok && project.EventID == eventID {
			counts[v.ProjectID]++
		}
	}
	var out []models.VoteTally
	for projectID, votes := range counts {
		out = append(out, models.VoteTally{ProjectID: projectID, Votes: votes})
	}
	return out, nil
}

func (r *fakeVoteRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.votes[id]; !ok {
		return repositories.ErrVoteNotFound
	}
	delete(r.votes, id)
	return nil
}
