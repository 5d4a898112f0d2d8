package services

import "errors"

// Errors shared across services and the HTTP mapping.
var (
	// Generic
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrForbidden        = errors.New("operation not allowed for the current user")

	// Immutable resources answer forbidden updates with 405.
	ErrUpdateNotAllowed = errors.New("this resource cannot be modified after submission")

	// Enrollment
	ErrEnrollmentClosed       = errors.New("the event's submission window is closed")
	ErrAlreadyEnrolledInEvent = errors.New("user already belongs to a team in this event")
	ErrAlreadyTeamMember      = errors.New("user is already a member of this team")
	ErrTeamFull               = errors.New("team has reached the event's member limit")

	// Projects
	ErrAdvisorRoleNotAllowed = errors.New("the chosen advisor's role cannot supervise projects")

	// Evaluations
	ErrEvaluationNotAssigned      = errors.New("evaluator is not assigned to this project")
	ErrEvaluationAlreadySubmitted = errors.New("an evaluation was already submitted for this assignment")
	ErrEvaluationAnswersRequired  = errors.New("evaluation must answer at least one question")

	// Assignments
	ErrAssignmentLimitReached = errors.New("project has reached the evaluator assignment limit")
	ErrAssignmentConcluded    = errors.New("a concluded assignment cannot be removed")

	// Votes
	ErrVoteConflict = errors.New("user has already voted for this project")

	// Uploads
	ErrUnsupportedFileType = errors.New("unsupported file content type")
)
