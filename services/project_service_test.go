package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniexpo/fair-system/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type projectFixture struct {
	service  ProjectService
	users    *fakeUserRepo
	events   *fakeEventRepo
	projects *fakeProjectRepo
	teams    *fakeTeamRepo
	statuses *fakeStatusRepo
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	projects := newFakeProjectRepo()
	teams := newFakeTeamRepo(projects)
	statuses := newFakeStatusRepo(models.StatusUnderReview, models.StatusApproved, models.StatusRejected)

	service := NewProjectService(
		projects, users, events, teams, statuses,
		[]models.RoleID{models.RoleAdmin, models.RoleAdvisor},
		testLogger(),
	)
	return &projectFixture{
		service:  service,
		users:    users,
		events:   events,
		projects: projects,
		teams:    teams,
		statuses: statuses,
	}
}

func (f *projectFixture) openEvent(maxTeamSize int) *models.Event {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	return f.events.add(&models.Event{
		Name:            "Feira de Ciências",
		Active:          true,
		SubmissionStart: &start,
		SubmissionEnd:   &end,
		MinTeamSize:     1,
		MaxTeamSize:     maxTeamSize,
	})
}

func (f *projectFixture) student(name string) *models.User {
	return f.users.add(&models.User{Name: name, Email: name + "@uni.edu", RoleID: models.RoleStudent})
}

func (f *projectFixture) advisor(name string) *models.User {
	return f.users.add(&models.User{Name: name, Email: name + "@uni.edu", RoleID: models.RoleAdvisor})
}

func validProjectInput(eventID, advisorID int) CreateProjectInput {
	return CreateProjectInput{
		Title:     "Monitoramento de qualidade da água",
		Problem:   "Rios urbanos sem medição contínua",
		Relevance: "Dados abertos para a defesa civil",
		EventID:   eventID,
		AdvisorID: advisorID,
	}
}

func TestProjectCreateEnrollsOwnerAsLeader(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(3)
	owner := f.student("ana")
	advisor := f.advisor("paulo")

	project, err := f.service.Create(context.Background(), owner.ID, validProjectInput(event.ID, advisor.ID))
	require.NoError(t, err)
	require.NotZero(t, project.ID)
	assert.NotNil(t, project.SubmittedAt)

	team, err := f.teams.GetByProject(context.Background(), project.ID)
	require.NoError(t, err)
	members, err := f.teams.ListMembers(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, models.MemberRoleLeader, members[0].Role)

	status, err := f.statuses.GetByID(context.Background(), project.StatusID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, status.Name)
}

func TestProjectCreateRejectsClosedWindow(t *testing.T) {
	f := newProjectFixture(t)
	start := time.Now().Add(-48 * time.Hour)
	end := time.Now().Add(-24 * time.Hour)
	event := f.events.add(&models.Event{
		Name: "Edição passada", Active: true,
		SubmissionStart: &start, SubmissionEnd: &end,
		MinTeamSize: 1, MaxTeamSize: 3,
	})
	owner := f.student("ana")
	advisor := f.advisor("paulo")

	_, err := f.service.Create(context.Background(), owner.ID, validProjectInput(event.ID, advisor.ID))
	assert.ErrorIs(t, err, ErrEnrollmentClosed)
}

func TestProjectCreateRejectsStudentAdvisor(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(3)
	owner := f.student("ana")
	notAdvisor := f.student("bruno")

	_, err := f.service.Create(context.Background(), owner.ID, validProjectInput(event.ID, notAdvisor.ID))
	assert.ErrorIs(t, err, ErrAdvisorRoleNotAllowed)
}

func TestProjectEnrollRespectsCapacity(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(2)
	owner := f.student("ana")
	advisor := f.advisor("paulo")

	project, err := f.service.Create(context.Background(), owner.ID, validProjectInput(event.ID, advisor.ID))
	require.NoError(t, err)

	second := f.student("bruno")
	member, err := f.service.Enroll(context.Background(), project.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberRoleMember, member.Role)

	third := f.student("clara")
	_, err = f.service.Enroll(context.Background(), project.ID, third.ID)
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestProjectEnrollRejectsDuplicateAcrossEvent(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(5)
	advisor := f.advisor("paulo")

	first, err := f.service.Create(context.Background(), f.student("ana").ID, validProjectInput(event.ID, advisor.ID))
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), f.student("bruno").ID, validProjectInput(event.ID, advisor.ID))
	require.NoError(t, err)

	wanderer := f.student("clara")
	_, err = f.service.Enroll(context.Background(), first.ID, wanderer.ID)
	require.NoError(t, err)

	// One team per event: clara cannot also join bruno's project.
	_, err = f.service.Enroll(context.Background(), second.ID, wanderer.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolledInEvent)
}

func TestProjectUpdateRequiresOwnerOrAdmin(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(3)
	owner := f.student("ana")
	advisor := f.advisor("paulo")
	intruder := f.student("bruno")

	project, err := f.service.Create(context.Background(), owner.ID, validProjectInput(event.ID, advisor.ID))
	require.NoError(t, err)

	newTitle := "Título revisado do projeto"
	_, err = f.service.Update(context.Background(), project.ID, intruder.ID, models.RoleStudent,
		UpdateProjectInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.service.Update(context.Background(), project.ID, intruder.ID, models.RoleAdmin,
		UpdateProjectInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestProjectCreateValidatesInput(t *testing.T) {
	f := newProjectFixture(t)
	event := f.openEvent(3)
	owner := f.student("ana")
	advisor := f.advisor("paulo")

	input := validProjectInput(event.ID, advisor.ID)
	input.Title = "abc" // below the minimum length
	_, err := f.service.Create(context.Background(), owner.ID, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}
