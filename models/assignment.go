package models

import "time"

// AssignmentStatus matches the ENUM on avaliador_projeto. An assignment
// moves pendente -> concluida exactly once, when its evaluation is submitted.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pendente"
	AssignmentConcluded AssignmentStatus = "concluida"
)

// Assignment pairs an evaluator with a project. A project holds at most
// MaxAssignmentsPerProject of them.
type Assignment struct {
	ID          int              `json:"id" db:"id"`
	ProjectID   int              `json:"id_projeto" db:"id_projeto"`
	EvaluatorID int              `json:"id_avaliador" db:"id_avaliador"`
	Status      AssignmentStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`

	Evaluator *User    `json:"avaliador,omitempty" db:"-"`
	Project   *Project `json:"projeto,omitempty" db:"-"`
}

const MaxAssignmentsPerProject = 3
