package models

import "time"

// Evaluation is the questionnaire-based judgment submitted against one
// assignment. Immutable after submission.
type Evaluation struct {
	ID           int       `json:"id_avaliacao" db:"id_avaliacao"`
	AssignmentID int       `json:"id_avaliador_projeto" db:"id_avaliador_projeto"`
	OverallScore float64   `json:"nota_geral" db:"nota_geral"`
	Remarks      *string   `json:"observacoes,omitempty" db:"observacoes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Answers []Answer `json:"respostas,omitempty" db:"-"`
}

type Answer struct {
	ID           int `json:"id_resposta" db:"id_resposta"`
	EvaluationID int `json:"id_avaliacao" db:"id_avaliacao"`
	QuestionID   int `json:"id_pergunta" db:"id_pergunta"`
	Value        int `json:"valor_resposta" db:"valor_resposta"`
}
