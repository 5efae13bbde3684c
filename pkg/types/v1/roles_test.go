package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRolesDedupesByPriority(t *testing.T) {
	in := []Role{"CLIENT", "ADMIN", "CLIENT", "MANAGER"}
	assert.Equal(t, []Role{RoleAdmin, RoleManager, RoleClient}, SortRoles(in))
	assert.Equal(t, []Role{"CLIENT", "ADMIN", "CLIENT", "MANAGER"}, in, "input must not be modified")
}

func TestSortRolesUnknownLast(t *testing.T) {
	got := SortRoles([]Role{"ZED", "CLIENT", "AUDITOR", "", "MECHANIC"})
	assert.Equal(t, []Role{RoleMechanic, RoleClient, "AUDITOR", "ZED"}, got)
}

func TestNextRoleWraps(t *testing.T) {
	assert.Equal(t, RoleManager, NextRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, NextRole(RoleClient))
	assert.Equal(t, RoleAdmin, NextRole("UNKNOWN"))
}

func TestPrimaryRole(t *testing.T) {
	u := User{ID: 1, Username: "ana", Roles: []Role{RoleClient, RoleMechanic}}
	assert.Equal(t, RoleMechanic, u.PrimaryRole())
	assert.Equal(t, Role(""), User{}.PrimaryRole())
	assert.True(t, ValidRole(RoleReceptionist))
	assert.False(t, ValidRole("OWNER"))
}
