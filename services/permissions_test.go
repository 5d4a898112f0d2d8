package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uniexpo/fair-system/models"
)

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		name string
		role models.RoleID
		perm Permission
		want bool
	}{
		{"admin manages users", models.RoleAdmin, PermManageUsers, true},
		{"admin votes", models.RoleAdmin, PermVote, true},
		{"student manages own projects", models.RoleStudent, PermManageProjects, true},
		{"student cannot manage users", models.RoleStudent, PermManageUsers, false},
		{"student cannot review projects", models.RoleStudent, PermReviewProjects, false},
		{"evaluator submits evaluations", models.RoleEvaluator, PermSubmitEvaluations, true},
		{"evaluator cannot manage events", models.RoleEvaluator, PermManageEvents, false},
		{"advisor reviews projects", models.RoleAdvisor, PermReviewProjects, true},
		{"advisor cannot submit evaluations", models.RoleAdvisor, PermSubmitEvaluations, false},
		{"unknown role has nothing", models.RoleID(99), PermViewEvents, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleHasPermission(tt.role, tt.perm))
		})
	}
}

func TestPermissionsForRoleAdminHasEverything(t *testing.T) {
	admin := PermissionsForRole(models.RoleAdmin)
	assert.Len(t, admin, len(allPermissions))
	for _, perm := range allPermissions {
		assert.True(t, RoleHasPermission(models.RoleAdmin, perm), "admin missing %s", perm)
	}
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := PermissionsForRole(models.RoleStudent)
	if assert.NotEmpty(t, perms) {
		perms[0] = Permission("mutated")
		assert.NotContains(t, PermissionsForRole(models.RoleStudent), Permission("mutated"))
	}
}

func TestEveryRolePermissionIsKnown(t *testing.T) {
	known := make(map[Permission]bool, len(allPermissions))
	for _, p := range allPermissions {
		known[p] = true
	}
	for role, perms := range rolePermissions {
		for _, p := range perms {
			assert.True(t, known[p], "role %d grants unknown permission %s", role, p)
		}
	}
}
