package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing resource", services.ErrNotFound, http.StatusNotFound},
		{"missing project", repositories.ErrProjectNotFound, http.StatusNotFound},
		{"duplicate enrollment in event", services.ErrAlreadyEnrolledInEvent, http.StatusConflict},
		{"duplicate team membership", services.ErrAlreadyTeamMember, http.StatusConflict},
		{"duplicate vote", services.ErrVoteConflict, http.StatusConflict},
		{"evaluation already submitted", services.ErrEvaluationAlreadySubmitted, http.StatusConflict},
		{"team at event capacity", services.ErrTeamFull, http.StatusForbidden},
		{"enrollment window closed", services.ErrEnrollmentClosed, http.StatusForbidden},
		{"caller is not the assignee", services.ErrEvaluationNotAssigned, http.StatusForbidden},
		{"deleting a concluded assignment", services.ErrAssignmentConcluded, http.StatusForbidden},
		{"update on an immutable resource", services.ErrUpdateNotAllowed, http.StatusMethodNotAllowed},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"validation failure", services.ErrValidationFailed, http.StatusUnprocessableEntity},
		{"advisor role policy", services.ErrAdvisorRoleNotAllowed, http.StatusBadRequest},
		{"anything else", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
