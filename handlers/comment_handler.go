package handlers

import (
	"net/http"

	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/services"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(cs services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CommentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comment, err := h.commentService.Create(r.Context(), authorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"comentario": comment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CommentHandler) ListByRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := idParam(r, "recordID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comments, err := h.commentService.ListByRecord(r.Context(), recordID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"comentarios": comments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "commentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Text string `json:"comentario"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comment, err := h.commentService.Update(r.Context(), id, actorID, actorRole, input.Text)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"comentario": comment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "commentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.commentService.Delete(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
