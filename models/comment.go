package models

import "time"

// Comment is a development note attached to a task record.
type Comment struct {
	ID        int       `json:"id_comentario" db:"id_comentario"`
	RecordID  int       `json:"id_registro" db:"id_registro"`
	AuthorID  int       `json:"id_usuario" db:"id_usuario"`
	Text      string    `json:"comentario" db:"comentario"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author *User `json:"usuario,omitempty" db:"-"`
}
