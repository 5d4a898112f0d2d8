package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

// The happy path of Submit runs inside a database transaction and is covered
// by integration tests against a real Postgres. These tests pin down the
// guard clauses that run before the transaction begins.

func validEvaluationInput(assignmentID int) SubmitEvaluationInput {
	return SubmitEvaluationInput{
		AssignmentID: assignmentID,
		OverallScore: 85,
		Answers: []AnswerInput{
			{QuestionID: 1, Value: 9},
			{QuestionID: 2, Value: 8},
		},
	}
}

func pendingAssignment(t *testing.T, assignments *fakeAssignmentRepo, projectID, evaluatorID int) *models.Assignment {
	t.Helper()
	assignment := &models.Assignment{ProjectID: projectID, EvaluatorID: evaluatorID, Status: models.AssignmentPending}
	require.NoError(t, assignments.CreateBounded(context.Background(), assignment, models.MaxAssignmentsPerProject))
	return assignment
}

func TestSubmitRejectsUnknownAssignment(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	service := NewEvaluationService(nil, nil, assignments, testLogger())

	_, err := service.Submit(context.Background(), 42, validEvaluationInput(999))
	assert.ErrorIs(t, err, repositories.ErrAssignmentNotFound)
}

func TestSubmitRequiresCallerToBeAssignee(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	assignment := pendingAssignment(t, assignments, 7, 42)

	service := NewEvaluationService(nil, nil, assignments, testLogger())

	_, err := service.Submit(context.Background(), 43, validEvaluationInput(assignment.ID))
	assert.ErrorIs(t, err, ErrEvaluationNotAssigned)
}

func TestSubmitRejectsConcludedAssignment(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	assignment := pendingAssignment(t, assignments, 7, 42)
	require.NoError(t, assignments.UpdateStatus(context.Background(), nil, assignment.ID, models.AssignmentConcluded))

	service := NewEvaluationService(nil, nil, assignments, testLogger())

	_, err := service.Submit(context.Background(), 42, validEvaluationInput(assignment.ID))
	assert.ErrorIs(t, err, ErrEvaluationAlreadySubmitted)
}

func TestSubmitRequiresAnswers(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	assignment := pendingAssignment(t, assignments, 7, 42)
	service := NewEvaluationService(nil, nil, assignments, testLogger())

	input := validEvaluationInput(assignment.ID)
	input.Answers = nil
	_, err := service.Submit(context.Background(), 42, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSubmitValidatesScoreRange(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	assignment := pendingAssignment(t, assignments, 7, 42)
	service := NewEvaluationService(nil, nil, assignments, testLogger())

	input := validEvaluationInput(assignment.ID)
	input.OverallScore = 120
	_, err := service.Submit(context.Background(), 42, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}
