package handlers

import (
	"errors"
	"net/http"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/services"
)

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(as services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as}
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input services.AssignInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.assignmentService.Assign(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"atribuicao": assignment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "assignmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.assignmentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"atribuicao": assignment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignments, err := h.assignmentService.ListByProject(r.Context(), projectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"atribuicoes": assignments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) ListByEvaluator(w http.ResponseWriter, r *http.Request) {
	evaluatorID, err := idParam(r, "evaluatorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var statusFilter *models.AssignmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.AssignmentStatus(raw)
		if status != models.AssignmentPending && status != models.AssignmentConcluded {
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
		statusFilter = &status
	}

	assignments, err := h.assignmentService.ListByEvaluator(r.Context(), evaluatorID, statusFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"atribuicoes": assignments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "assignmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.assignmentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
