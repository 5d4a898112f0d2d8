package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(ps services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateProjectInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), ownerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"projeto": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"projeto": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProjectFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	projects, err := h.projectService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"projetos": projects}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseProjectFilter(r *http.Request) (models.ProjectFilter, error) {
	var filter models.ProjectFilter
	q := r.URL.Query()

	intParam := func(name string) (*int, error) {
		raw := q.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s query parameter %q", name, raw)
		}
		return &v, nil
	}

	var err error
	if filter.OwnerID, err = intParam("id_aluno"); err != nil {
		return filter, err
	}
	if filter.AdvisorID, err = intParam("id_orientador"); err != nil {
		return filter, err
	}
	if filter.EventID, err = intParam("id_evento"); err != nil {
		return filter, err
	}
	if filter.StatusID, err = intParam("id_situacao"); err != nil {
		return filter, err
	}
	if filter.StatusNot, err = intParam("situacao_not"); err != nil {
		return filter, err
	}

	if raw := q.Get("situacao_in"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return filter, fmt.Errorf("invalid situacao_in query parameter %q", raw)
			}
			filter.StatusIn = append(filter.StatusIn, v)
		}
	}
	return filter, nil
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.UpdateProjectInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, actorID, actorRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"projeto": project}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.projectService.Delete(r.Context(), id, actorID, actorRole); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Enroll joins the authenticated user to the project's team.
func (h *ProjectHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	member, err := h.projectService.Enroll(r.Context(), projectID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"integrante": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// actorFromContext bundles the two claims most handlers need.
func actorFromContext(r *http.Request) (int, models.RoleID, error) {
	actorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return 0, 0, err
	}
	actorRole, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		return 0, 0, err
	}
	return actorID, actorRole, nil
}
