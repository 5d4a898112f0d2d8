package models

import "time"

type Project struct {
	ID          int        `json:"id_projeto" db:"id_projeto"`
	OwnerID     int        `json:"id_responsavel" db:"id_responsavel"`
	Title       string     `json:"titulo" db:"titulo"`
	Problem     string     `json:"problema" db:"problema"`
	Relevance   string     `json:"relevancia" db:"relevancia"`
	StatusID    int        `json:"id_situacao" db:"id_situacao"`
	EventID     int        `json:"id_evento" db:"id_evento"`
	AdvisorID   int        `json:"id_orientador" db:"id_orientador"`
	CoAdvisorID *int       `json:"id_coorientador,omitempty" db:"id_coorientador"`
	SubmittedAt *time.Time `json:"data_criacao,omitempty" db:"data_criacao"`
	ApprovedAt  *time.Time `json:"data_aprovacao,omitempty" db:"data_aprovacao"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Optional related entities, populated by services when requested.
	Owner   *User   `json:"responsavel,omitempty" db:"-"`
	Advisor *User   `json:"orientador,omitempty" db:"-"`
	Status  *Status `json:"situacao,omitempty" db:"-"`
	Event   *Event  `json:"evento,omitempty" db:"-"`
	Team    *Team   `json:"equipe,omitempty" db:"-"`
}

// ProjectFilter narrows project listings. StatusIn/StatusNot mirror the
// situacao_in / situacao_not query parameters of the list endpoint.
type ProjectFilter struct {
	OwnerID   *int
	AdvisorID *int
	EventID   *int
	StatusID  *int
	StatusIn  []int
	StatusNot *int
}
