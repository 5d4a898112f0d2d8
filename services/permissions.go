package services

import "github.com/uniexpo/fair-system/models"

// Permission names the actions a role may perform. The strings match the
// permission vocabulary seeded in the database so front ends can reuse them.
type Permission string

const (
	PermManageUsers  Permission = "crud usuario"
	PermViewUsers    Permission = "exibir usuario"
	PermManageEvents Permission = "crud evento"
	PermViewEvents   Permission = "exibir evento"

	PermManageProjects Permission = "crud projeto"
	PermViewProjects   Permission = "exibir projeto"
	PermReviewProjects Permission = "avaliar projeto"

	PermManageTeams Permission = "crud equipe"
	PermViewTeams   Permission = "exibir equipe"

	PermManageTasks Permission = "crud tarefa"
	PermViewTasks   Permission = "exibir tarefa"

	PermManageQuestionnaires Permission = "crud questionario"
	PermViewQuestionnaires   Permission = "exibir questionario"

	PermManageAssignments Permission = "crud atribuicao"
	PermSubmitEvaluations Permission = "crud avaliacao"
	PermViewEvaluations   Permission = "exibir avaliacao"

	PermVote           Permission = "votar"
	PermManageStatuses Permission = "crud situacao"
)

var allPermissions = []Permission{
	PermManageUsers, PermViewUsers,
	PermManageEvents, PermViewEvents,
	PermManageProjects, PermViewProjects, PermReviewProjects,
	PermManageTeams, PermViewTeams,
	PermManageTasks, PermViewTasks,
	PermManageQuestionnaires, PermViewQuestionnaires,
	PermManageAssignments, PermSubmitEvaluations, PermViewEvaluations,
	PermVote, PermManageStatuses,
}

// rolePermissions is the whole authorization model: a pure lookup with no
// database round trip. Administrators hold every permission.
var rolePermissions = map[models.RoleID][]Permission{
	models.RoleAdmin: allPermissions,
	models.RoleStudent: {
		PermViewUsers,
		PermViewEvents,
		PermManageProjects,
		PermViewProjects,
		PermManageTeams,
		PermViewTeams,
		PermManageTasks,
		PermViewTasks,
		PermVote,
	},
	models.RoleEvaluator: {
		PermViewEvents,
		PermViewProjects,
		PermViewQuestionnaires,
		PermSubmitEvaluations,
		PermViewEvaluations,
		PermVote,
	},
	models.RoleAdvisor: {
		PermViewUsers,
		PermViewEvents,
		PermViewProjects,
		PermReviewProjects,
		PermViewTeams,
		PermViewTasks,
		PermViewEvaluations,
		PermVote,
	},
}

// PermissionsForRole resolves the full permission set of a role. The result
// is a copy, safe for callers to reorder or trim.
func PermissionsForRole(role models.RoleID) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// RoleHasPermission reports whether the role carries the permission.
func RoleHasPermission(role models.RoleID, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
