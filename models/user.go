package models

import "time"

// RoleID identifies a user type, matching the tipo_usuarios rows seeded in the DB.
type RoleID int

const (
	RoleAdmin     RoleID = 1
	RoleStudent   RoleID = 2
	RoleEvaluator RoleID = 3
	RoleAdvisor   RoleID = 4
)

func (r RoleID) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleEvaluator, RoleAdvisor:
		return true
	}
	return false
}

func (r RoleID) Name() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleStudent:
		return "Aluno"
	case RoleEvaluator:
		return "Avaliador"
	case RoleAdvisor:
		return "Orientador"
	}
	return "Desconhecido"
}

type User struct {
	ID           int       `json:"id_usuario" db:"id_usuario"`
	Name         string    `json:"nome" db:"nome"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"senha_hash"`
	RoleID       RoleID    `json:"id_tipo_usuario" db:"id_tipo_usuario"`
	Registration string    `json:"id_matricula" db:"id_matricula"`
	CPF          *string   `json:"cpf,omitempty" db:"cpf"`
	Phone        *string   `json:"telefone,omitempty" db:"telefone"`
	Institution  *string   `json:"instituicao,omitempty" db:"instituicao"`
	Course       *string   `json:"curso,omitempty" db:"curso"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"foto_key"`
	PhotoURL *string `json:"foto_url,omitempty" db:"-"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
