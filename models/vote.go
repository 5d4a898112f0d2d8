package models

import "time"

// PopularVote is unique per (project, user).
type PopularVote struct {
	ID        int       `json:"id_voto" db:"id_voto"`
	ProjectID int       `json:"id_projeto" db:"id_projeto"`
	UserID    int       `json:"id_usuario" db:"id_usuario"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VoteTally is the per-project vote count broadcast to event rooms.
type VoteTally struct {
	ProjectID int `json:"id_projeto"`
	Votes     int `json:"votos"`
}
