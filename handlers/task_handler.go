package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/uniexpo/fair-system/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(ts services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateTaskInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), actorID, actorRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tarefa": task}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "taskID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tarefa": task}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var statusID *int
	if raw := r.URL.Query().Get("id_situacao"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid id_situacao query parameter"))
			return
		}
		statusID = &v
	}

	tasks, err := h.taskService.ListByProject(r.Context(), projectID, statusID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tarefas": tasks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "taskID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.UpdateTaskInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), id, actorID, actorRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tarefa": task}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "taskID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.taskService.Delete(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateTaskRecordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.taskService.CreateRecord(r.Context(), actorID, actorRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registro": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) GetRecordByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recordID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.taskService.GetRecordByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registro": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r, "taskID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.taskService.ListRecords(r.Context(), taskID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registros": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recordID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.UpdateTaskRecordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.taskService.UpdateRecord(r.Context(), id, actorID, actorRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registro": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TaskHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recordID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.taskService.DeleteRecord(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadRecordFile receives a multipart form with an "arquivo" file field.
func (h *TaskHandler) UploadRecordFile(w http.ResponseWriter, r *http.Request) {
	recordID, err := idParam(r, "recordID")
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
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing arquivo file field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	record, err := h.taskService.UploadRecordFile(r.Context(), recordID, actorID, actorRole, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registro": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
