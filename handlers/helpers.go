package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// idParam parses a positive integer chi URL parameter.
func idParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return id, nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

func methodNotAllowedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// mapServiceErrorToHTTP translates service and repository errors into HTTP
// responses. Anything unknown becomes a 500.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Not found
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrEventNotFound),
		errors.Is(err, repositories.ErrStatusNotFound),
		errors.Is(err, repositories.ErrProjectNotFound),
		errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrMemberNotFound),
		errors.Is(err, repositories.ErrTaskNotFound),
		errors.Is(err, repositories.ErrTaskRecordNotFound),
		errors.Is(err, repositories.ErrQuestionnaireNotFound),
		errors.Is(err, repositories.ErrQuestionNotFound),
		errors.Is(err, repositories.ErrAssignmentNotFound),
		errors.Is(err, repositories.ErrEvaluationNotFound),
		errors.Is(err, repositories.ErrReviewNotFound),
		errors.Is(err, repositories.ErrVoteNotFound),
		errors.Is(err, repositories.ErrCommentNotFound),
		errors.Is(err, repositories.ErrPresentationNotFound):
		notFoundResponse(w, r)

	// Conflicts
	case errors.Is(err, services.ErrAuthEmailTaken),
		errors.Is(err, services.ErrAlreadyEnrolledInEvent),
		errors.Is(err, services.ErrAlreadyTeamMember),
		errors.Is(err, services.ErrAssignmentLimitReached),
		errors.Is(err, services.ErrEvaluationAlreadySubmitted),
		errors.Is(err, services.ErrVoteConflict),
		errors.Is(err, repositories.ErrUserEmailConflict),
		errors.Is(err, repositories.ErrStatusNameConflict),
		errors.Is(err, repositories.ErrMemberConflict),
		errors.Is(err, repositories.ErrAssignmentConflict),
		errors.Is(err, repositories.ErrEvaluationConflict),
		errors.Is(err, repositories.ErrVoteConflict),
		errors.Is(err, repositories.ErrStatusInUse),
		errors.Is(err, repositories.ErrUserDeleteRestricted):
		conflictResponse(w, r, err.Error())

	// Validation and referential problems
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrEventInvalidWindow),
		errors.Is(err, services.ErrEventInvalidTeamSize),
		errors.Is(err, services.ErrEvaluationAnswersRequired),
		errors.Is(err, services.ErrUnsupportedFileType):
		failedValidationResponse(w, r, err)

	case errors.Is(err, services.ErrAdvisorRoleNotAllowed),
		errors.Is(err, repositories.ErrUserRoleInvalid),
		errors.Is(err, repositories.ErrProjectOwnerInvalid),
		errors.Is(err, repositories.ErrProjectAdvisorInvalid),
		errors.Is(err, repositories.ErrProjectStatusInvalid),
		errors.Is(err, repositories.ErrProjectEventInvalid),
		errors.Is(err, repositories.ErrTeamProjectInvalid),
		errors.Is(err, repositories.ErrMemberUserInvalid),
		errors.Is(err, repositories.ErrTaskProjectInvalid),
		errors.Is(err, repositories.ErrTaskStatusInvalid),
		errors.Is(err, repositories.ErrTaskRecordTaskInvalid),
		errors.Is(err, repositories.ErrTaskRecordUserInvalid),
		errors.Is(err, repositories.ErrQuestionnaireEventInvalid),
		errors.Is(err, repositories.ErrQuestionParentInvalid),
		errors.Is(err, repositories.ErrAssignmentProjectInvalid),
		errors.Is(err, repositories.ErrAssignmentEvaluatorInvalid),
		errors.Is(err, repositories.ErrEvaluationQuestionInvalid),
		errors.Is(err, repositories.ErrReviewProjectInvalid),
		errors.Is(err, repositories.ErrReviewReviewerInvalid),
		errors.Is(err, repositories.ErrReviewStatusInvalid),
		errors.Is(err, repositories.ErrVoteProjectInvalid),
		errors.Is(err, repositories.ErrVoteUserInvalid),
		errors.Is(err, repositories.ErrCommentRecordInvalid),
		errors.Is(err, repositories.ErrCommentAuthorInvalid),
		errors.Is(err, repositories.ErrPresentationProjectInvalid):
		badRequestResponse(w, r, err)

	// Authentication and authorization
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrEnrollmentClosed),
		errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrEvaluationNotAssigned),
		errors.Is(err, services.ErrAssignmentConcluded):
		forbiddenResponse(w, r, err.Error())

	// Immutable resources
	case errors.Is(err, services.ErrUpdateNotAllowed):
		methodNotAllowedResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
