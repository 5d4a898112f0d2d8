package models

import "time"

type Questionnaire struct {
	ID        int       `json:"id_questionario" db:"id_questionario"`
	EventID   int       `json:"id_evento" db:"id_evento"`
	Title     string    `json:"titulo" db:"titulo"`
	Active    bool      `json:"ativo" db:"ativo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Questions []Question `json:"perguntas,omitempty" db:"-"`
}

type Question struct {
	ID              int    `json:"id_pergunta" db:"id_pergunta"`
	QuestionnaireID int    `json:"id_questionario" db:"id_questionario"`
	Criterion       string `json:"criterio" db:"criterio"`
	Text            string `json:"texto_pergunta" db:"texto_pergunta"`
	Order           int    `json:"ordem" db:"ordem"`
}
