package handlers

import (
	"net/http"

	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/services"
)

type EvaluationHandler struct {
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(es services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: es}
}

func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	evaluatorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.SubmitEvaluationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.evaluationService.Submit(r.Context(), evaluatorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"avaliacao": evaluation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.evaluationService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"avaliacao": evaluation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluations, err := h.evaluationService.ListByProject(r.Context(), projectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"avaliacoes": evaluations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update rejects modification attempts: submitted evaluations are final.
func (h *EvaluationHandler) Update(w http.ResponseWriter, r *http.Request) {
	mapServiceErrorToHTTP(w, r, services.ErrUpdateNotAllowed)
}

func (h *EvaluationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.evaluationService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
