package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("PRINCIPAL").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapManageUsers, true},
		{RoleAdmin, CapDeleteProject, true},
		{RoleAdmin, CapReviewProject, true},

		{RoleSupervisor, CapReviewProject, true},
		{RoleSupervisor, CapViewProjects, true},
		{RoleSupervisor, CapManageUsers, false},
		{RoleSupervisor, CapCreateProject, false},
		{RoleSupervisor, CapDeleteProject, false},

		{RoleStudent, CapCreateProject, true},
		{RoleStudent, CapManageTasks, true},
		{RoleStudent, CapManageUsers, false},
		{RoleStudent, CapReviewProject, false},
		{RoleStudent, CapDeleteProject, false},

		{Role("UNKNOWN"), CapViewProjects, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.cap), "%s.Can(%s)", tt.role, tt.cap)
	}
}

func TestUser_passwords(t *testing.T) {
	var usr User
	require.NoError(t, usr.SetPassword("s3cr3t-pass"))
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NotContains(t, string(usr.PasswordHash), "s3cr3t-pass")

	assert.NoError(t, usr.CheckPassword("s3cr3t-pass"))
	assert.Error(t, usr.CheckPassword("wrong"))
	assert.Error(t, usr.CheckPassword(""))
}
