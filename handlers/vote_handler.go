package handlers

import (
	"errors"
	"net/http"

	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/services"
)

type VoteHandler struct {
	voteService services.VoteService
}

func NewVoteHandler(vs services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: vs}
}

func (h *VoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		ProjectID int `json:"id_projeto"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ProjectID <= 0 {
		badRequestResponse(w, r, errors.New("id_projeto is required"))
		return
	}

	vote, err := h.voteService.Vote(r.Context(), userID, input.ProjectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"voto": vote}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "voteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	vote, err := h.voteService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"voto": vote}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.voteService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"votos": votes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TallyByEvent ranks the event's projects by popular vote count.
func (h *VoteHandler) TallyByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tallies, err := h.voteService.TallyByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"apuracao": tallies}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update rejects modification attempts: a vote is cast or withdrawn, never edited.
func (h *VoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	mapServiceErrorToHTTP(w, r, services.ErrUpdateNotAllowed)
}

func (h *VoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "voteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.voteService.Delete(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
