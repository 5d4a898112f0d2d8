package models

import "time"

// Event represents a fair edition (evento). Team size limits and the
// submission window configured here drive the enrollment rules.
type Event struct {
	ID              int        `json:"id_evento" db:"id_evento"`
	Name            string     `json:"nome" db:"nome"`
	Active          bool       `json:"ativo" db:"ativo"`
	EventDate       *time.Time `json:"data_evento,omitempty" db:"data_evento"`
	SubmissionStart *time.Time `json:"inicio_submissao,omitempty" db:"inicio_submissao"`
	SubmissionEnd   *time.Time `json:"fim_submissao,omitempty" db:"fim_submissao"`
	MinTeamSize     int        `json:"min_pessoas" db:"min_pessoas"`
	MaxTeamSize     int        `json:"max_pessoas" db:"max_pessoas"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// SubmissionOpen reports whether the submission window contains now.
// A missing bound leaves that side of the window open.
func (e *Event) SubmissionOpen(now time.Time) bool {
	if !e.Active {
		return false
	}
	if e.SubmissionStart != nil && now.Before(*e.SubmissionStart) {
		return false
	}
	if e.SubmissionEnd != nil && now.After(*e.SubmissionEnd) {
		return false
	}
	return true
}
