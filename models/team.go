package models

import "time"

// MemberRole is the funcao a user holds inside a team.
type MemberRole int

const (
	MemberRoleLeader MemberRole = 1
	MemberRoleMember MemberRole = 2
)

func (m MemberRole) Valid() bool {
	return m == MemberRoleLeader || m == MemberRoleMember
}

// Team groups the members attached to one project. It is created lazily on
// the first enrollment.
type Team struct {
	ID        int       `json:"id_equipe" db:"id_equipe"`
	ProjectID int       `json:"id_projeto" db:"id_projeto"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Members []TeamMember `json:"membros,omitempty" db:"-"`
}

type TeamMember struct {
	ID        int        `json:"id_membro" db:"id_membro"`
	TeamID    int        `json:"id_equipe" db:"id_equipe"`
	UserID    int        `json:"id_usuario" db:"id_usuario"`
	Role      MemberRole `json:"id_funcao" db:"id_funcao"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	User *User `json:"usuario,omitempty" db:"-"`
}
