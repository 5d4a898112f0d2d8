package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type assignmentFixture struct {
	service     AssignmentService
	assignments *fakeAssignmentRepo
	users       *fakeUserRepo
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	assignments := newFakeAssignmentRepo()
	users := newFakeUserRepo()
	return &assignmentFixture{
		service:     NewAssignmentService(assignments, users, testLogger()),
		assignments: assignments,
		users:       users,
	}
}

func (f *assignmentFixture) evaluator(name string) *models.User {
	return f.users.add(&models.User{Name: name, Email: name + "@uni.edu", RoleID: models.RoleEvaluator})
}

func TestAssignCreatesPendingAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	evaluator := f.evaluator("rita")

	assignment, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: evaluator.ID})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentPending, assignment.Status)
	assert.Equal(t, 7, assignment.ProjectID)
}

func TestAssignIsIdempotentPerPair(t *testing.T) {
	f := newAssignmentFixture(t)
	evaluator := f.evaluator("rita")

	first, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: evaluator.ID})
	require.NoError(t, err)

	second, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: evaluator.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := f.service.ListByProject(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssignEnforcesPerProjectLimit(t *testing.T) {
	f := newAssignmentFixture(t)

	for i := 0; i < models.MaxAssignmentsPerProject; i++ {
		evaluator := f.evaluator(fmt.Sprintf("avaliador%d", i))
		_, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: evaluator.ID})
		require.NoError(t, err)
	}

	extra := f.evaluator("excedente")
	_, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: extra.ID})
	assert.ErrorIs(t, err, ErrAssignmentLimitReached)
}

func TestAssignRejectsNonEvaluator(t *testing.T) {
	f := newAssignmentFixture(t)
	student := f.users.add(&models.User{Name: "ana", Email: "ana@uni.edu", RoleID: models.RoleStudent})

	_, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: student.ID})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAssignRejectsUnknownEvaluator(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: 999})
	assert.ErrorIs(t, err, repositories.ErrAssignmentEvaluatorInvalid)
}

func TestDeleteRefusesConcludedAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	evaluator := f.evaluator("rita")

	assignment, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 7, EvaluatorID: evaluator.ID})
	require.NoError(t, err)

	require.NoError(t, f.assignments.UpdateStatus(context.Background(), nil, assignment.ID, models.AssignmentConcluded))

	err = f.service.Delete(context.Background(), assignment.ID)
	assert.ErrorIs(t, err, ErrAssignmentConcluded)

	// Pending assignments still go away normally.
	other, err := f.service.Assign(context.Background(), AssignInput{ProjectID: 8, EvaluatorID: evaluator.ID})
	require.NoError(t, err)
	assert.NoError(t, f.service.Delete(context.Background(), other.ID))
}
