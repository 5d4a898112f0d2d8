package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type voteFixture struct {
	service  VoteService
	votes    *fakeVoteRepo
	projects *fakeProjectRepo
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()
	projects := newFakeProjectRepo()
	votes := newFakeVoteRepo(projects)
	return &voteFixture{
		service:  NewVoteService(votes, projects, nil, testLogger()),
		votes:    votes,
		projects: projects,
	}
}

func (f *voteFixture) project(eventID int) *models.Project {
	return f.projects.add(&models.Project{Title: "Projeto", EventID: eventID})
}

func TestVoteOncePerUserPerProject(t *testing.T) {
	f := newVoteFixture(t)
	project := f.project(1)

	vote, err := f.service.Vote(context.Background(), 10, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, vote.ProjectID)

	_, err = f.service.Vote(context.Background(), 10, project.ID)
	assert.ErrorIs(t, err, ErrVoteConflict)

	// A different user still may vote on the same project.
	_, err = f.service.Vote(context.Background(), 11, project.ID)
	assert.NoError(t, err)
}

func TestVoteRequiresExistingProject(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.service.Vote(context.Background(), 10, 999)
	assert.ErrorIs(t, err, repositories.ErrProjectNotFound)
}

func TestTallyByEventCountsPerProject(t *testing.T) {
	f := newVoteFixture(t)
	first := f.project(1)
	second := f.project(1)
	otherEvent := f.project(2)

	for userID := 1; userID <= 3; userID++ {
		_, err := f.service.Vote(context.Background(), userID, first.ID)
		require.NoError(t, err)
	}
	_, err := f.service.Vote(context.Background(), 1, second.ID)
	require.NoError(t, err)
	_, err = f.service.Vote(context.Background(), 1, otherEvent.ID)
	require.NoError(t, err)

	tallies, err := f.service.TallyByEvent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tallies, 2)

	byProject := make(map[int]int, len(tallies))
	for _, tally := range tallies {
		byProject[tally.ProjectID] = tally.Votes
	}
	assert.Equal(t, 3, byProject[first.ID])
	assert.Equal(t, 1, byProject[second.ID])
}

func TestVoteDeleteOwnership(t *testing.T) {
	f := newVoteFixture(t)
	project := f.project(1)

	vote, err := f.service.Vote(context.Background(), 10, project.ID)
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), vote.ID, 11, models.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, f.service.Delete(context.Background(), vote.ID, 10, models.RoleStudent))

	// Admins may withdraw anyone's vote.
	again, err := f.service.Vote(context.Background(), 10, project.ID)
	require.NoError(t, err)
	assert.NoError(t, f.service.Delete(context.Background(), again.ID, 99, models.RoleAdmin))
}
