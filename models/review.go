package models

import "time"

// Review records a reviewer's status verdict on a project. Writing one also
// moves the project to the same status, in the same transaction.
type Review struct {
	ID         int       `json:"id" db:"id"`
	ProjectID  int       `json:"id_projeto" db:"id_projeto"`
	ReviewerID int       `json:"id_avaliador" db:"id_avaliador"`
	StatusID   int       `json:"id_situacao" db:"id_situacao"`
	Feedback   *string   `json:"feedback,omitempty" db:"feedback"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Status *Status `json:"situacao,omitempty" db:"-"`
}
