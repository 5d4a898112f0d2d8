package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventInput() EventInput {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(24 * time.Hour)
	return EventInput{
		Name:            "Feira de Ciências 2026",
		Active:          true,
		SubmissionStart: &start,
		SubmissionEnd:   &end,
		MinTeamSize:     1,
		MaxTeamSize:     5,
	}
}

func TestEventCreate(t *testing.T) {
	events := newFakeEventRepo()
	service := NewEventService(events, nil, testLogger())

	event, err := service.Create(context.Background(), validEventInput())
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.True(t, event.Active)

	stored, err := events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Feira de Ciências 2026", stored.Name)
}

func TestEventCreateRejectsInvertedTeamSizes(t *testing.T) {
	service := NewEventService(newFakeEventRepo(), nil, testLogger())

	input := validEventInput()
	input.MinTeamSize = 4
	input.MaxTeamSize = 2
	_, err := service.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrEventInvalidTeamSize)
}

func TestEventCreateRejectsInvertedWindow(t *testing.T) {
	service := NewEventService(newFakeEventRepo(), nil, testLogger())

	input := validEventInput()
	input.SubmissionStart, input.SubmissionEnd = input.SubmissionEnd, input.SubmissionStart
	_, err := service.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrEventInvalidWindow)
}

func TestEventCreateValidatesName(t *testing.T) {
	service := NewEventService(newFakeEventRepo(), nil, testLogger())

	input := validEventInput()
	input.Name = "ab"
	_, err := service.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestEventUpdateAppliesAllFields(t *testing.T) {
	events := newFakeEventRepo()
	service := NewEventService(events, nil, testLogger())

	event, err := service.Create(context.Background(), validEventInput())
	require.NoError(t, err)

	input := validEventInput()
	input.Name = "Feira de Ciências, edição de inverno"
	input.Active = false
	input.MaxTeamSize = 8

	updated, err := service.Update(context.Background(), event.ID, input)
	require.NoError(t, err)
	assert.Equal(t, input.Name, updated.Name)
	assert.False(t, updated.Active)
	assert.Equal(t, 8, updated.MaxTeamSize)
}
