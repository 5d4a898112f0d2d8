package models

import "time"

// Presentation is the PDF deck submitted for a project.
type Presentation struct {
	ID          int       `json:"id_apresentacao" db:"id_apresentacao"`
	ProjectID   int       `json:"id_projeto" db:"id_projeto"`
	SubmittedAt time.Time `json:"data_envio" db:"data_envio"`

	FileKey string  `json:"-" db:"arquivo_pdf"`
	FileURL *string `json:"arquivo_pdf,omitempty" db:"-"`
}
