package handlers

import (
	"net/http"

	"github.com/uniexpo/fair-system/services"
)

type QuestionnaireHandler struct {
	questionnaireService services.QuestionnaireService
}

func NewQuestionnaireHandler(qs services.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: qs}
}

func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.QuestionnaireInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	questionnaire, err := h.questionnaireService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"questionario": questionnaire}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questionnaireID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	questionnaire, err := h.questionnaireService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"questionario": questionnaire}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	activeOnly := r.URL.Query().Get("ativo") == "true"

	questionnaires, err := h.questionnaireService.ListByEvent(r.Context(), eventID, activeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"questionarios": questionnaires}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questionnaireID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QuestionnaireInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	questionnaire, err := h.questionnaireService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"questionario": questionnaire}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questionnaireID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.questionnaireService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionnaireHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	questionnaireID, err := idParam(r, "questionnaireID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	question, err := h.questionnaireService.AddQuestion(r.Context(), questionnaireID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pergunta": question}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := idParam(r, "questionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	question, err := h.questionnaireService.UpdateQuestion(r.Context(), questionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pergunta": question}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionnaireHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := idParam(r, "questionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.questionnaireService.DeleteQuestion(r.Context(), questionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
