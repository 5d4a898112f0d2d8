package models

import "time"

type Task struct {
	ID           int        `json:"id_tarefa" db:"id_tarefa"`
	ProjectID    int        `json:"id_projeto" db:"id_projeto"`
	Description  string     `json:"descricao" db:"descricao"`
	Detail       *string    `json:"detalhe,omitempty" db:"detalhe"`
	StatusID     int        `json:"id_situacao" db:"id_situacao"`
	PlannedStart *time.Time `json:"data_inicio_prevista,omitempty" db:"data_inicio_prevista"`
	PlannedEnd   *time.Time `json:"data_fim_prevista,omitempty" db:"data_fim_prevista"`
	CompletedAt  *time.Time `json:"data_conclusao,omitempty" db:"data_conclusao"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Status *Status `json:"situacao,omitempty" db:"-"`
}

// TaskRecord documents one executed activity under a task, optionally with
// an uploaded deliverable.
type TaskRecord struct {
	ID            int       `json:"id_registro" db:"id_registro"`
	TaskID        int       `json:"id_tarefa" db:"id_tarefa"`
	Activity      string    `json:"descricao_atividade" db:"descricao_atividade"`
	Result        *string   `json:"resultado,omitempty" db:"resultado"`
	ExecutedAt    time.Time `json:"data_execucao" db:"data_execucao"`
	ResponsibleID int       `json:"id_responsavel" db:"id_responsavel"`

	FileKey *string `json:"-" db:"arquivo_key"`
	FileURL *string `json:"arquivo,omitempty" db:"-"`
}
