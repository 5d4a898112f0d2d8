package handlers

import (
	"errors"
	"net/http"

	"github.com/uniexpo/fair-system/services"
)

type PresentationHandler struct {
	presentationService services.PresentationService
}

func NewPresentationHandler(ps services.PresentationService) *PresentationHandler {
	return &PresentationHandler{presentationService: ps}
}

// Upload receives a multipart form with an "arquivo_pdf" file field.
func (h *PresentationHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, errors.New("could not parse multipart form"))
		return
	}
	file, header, err := r.FormFile("arquivo_pdf")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing arquivo_pdf file field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	presentation, err := h.presentationService.Upload(r.Context(), projectID, actorID, actorRole, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"apresentacao": presentation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PresentationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "presentationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	presentation, err := h.presentationService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"apresentacao": presentation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PresentationHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	presentations, err := h.presentationService.ListByProject(r.Context(), projectID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"apresentacoes": presentations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PresentationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "presentationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.presentationService.Delete(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
