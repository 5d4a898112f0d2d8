package handlers

import (
	"net/http"

	"github.com/uniexpo/fair-system/services"
)

type StatusHandler struct {
	statusService services.StatusService
}

func NewStatusHandler(ss services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: ss}
}

func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.StatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status, err := h.statusService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"situacao": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatusHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "statusID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status, err := h.statusService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"situacao": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.statusService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"situacoes": statuses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "statusID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.StatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status, err := h.statusService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"situacao": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "statusID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.statusService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
