package models

// Status is a controlled vocabulary value (situacao) shared by projects and tasks.
type Status struct {
	ID   int    `json:"id_situacao" db:"id_situacao"`
	Name string `json:"situacao" db:"situacao"`
}

// Seeded status names. IDs are assigned by the database; these constants
// exist so services and tests agree on the vocabulary.
const (
	StatusUnderReview = "Em Análise"
	StatusApproved    = "Aprovado"
	StatusRejected    = "Reprovado"
	StatusInProgress  = "Em Andamento"
	StatusCompleted   = "Concluído"
)
