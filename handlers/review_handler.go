package handlers

import (
	"net/http"

	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(rs services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	reviewerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.ReviewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	review, err := h.reviewService.Review(r.Context(), reviewerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"revisao": review}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReviewHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reviewID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	review, err := h.reviewService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"revisao": review}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"revisoes": reviews}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReviewHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reviews, err := h.reviewService.ListByProject(r.Context(), projectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"revisoes": reviews}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reviewID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.reviewService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
