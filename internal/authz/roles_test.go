package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRolesNormalizesAndDropsUnknown(t *testing.T) {
	roles := ParseRoles("HR_ADMIN, bogus, manager")
	require.Equal(t, []Role{RoleHRAdmin, RoleManager}, roles)
}

func TestParseRolesEmptyInput(t *testing.T) {
	require.Nil(t, ParseRoles(""))
	require.Nil(t, ParseRoles(" , ,"))
	require.Nil(t, ParseRoles("nobody,invented,these"))
}

func TestParseRolesTrimsWhitespace(t *testing.T) {
	roles := ParseRoles("  payroll ,FINANCE")
	require.Equal(t, []Role{RolePayroll, RoleFinance}, roles)
}

func TestMergeRolesUnionPreservesFirstSeenOrder(t *testing.T) {
	merged := MergeRoles("MANAGER,EMPLOYEE", "HR_ADMIN,MANAGER", "EMPLOYEE,AUDITOR")
	require.Equal(t, []Role{RoleManager, RoleEmployee, RoleHRAdmin, RoleAuditor}, merged)
}

func TestMergeRolesAllSourcesContribute(t *testing.T) {
	// Later sources still contribute even when the first is non-empty.
	merged := MergeRoles("EMPLOYEE", "", "AUDITOR")
	require.Equal(t, []Role{RoleEmployee, RoleAuditor}, merged)
}

func TestMergeRolesAllAbsent(t *testing.T) {
	require.Empty(t, MergeRoles("", "", ""))
}

func TestRolesToKeysCollapsesAdminRoles(t *testing.T) {
	keys := RolesToKeys([]Role{RoleHRAdmin, RolePayroll, RoleFinance, RoleExec, RoleITAssetAdmin})
	require.Equal(t, []RoleKey{KeySystemOwner}, keys)
}

func TestRolesToKeysMapping(t *testing.T) {
	keys := RolesToKeys([]Role{RoleHRBP, RoleManager, RoleEmployee, RoleComplianceOfficer, RoleAuditor})
	require.Equal(t, []RoleKey{KeyHRBusinessPartner, KeyManager, KeyEmployee, KeyAuditor}, keys)
}

func TestRolesToKeysNeverGrantsSupervisor(t *testing.T) {
	keys := RolesToKeys(AllRoles())
	require.NotContains(t, keys, KeySupervisor)
}

func TestIsRole(t *testing.T) {
	require.True(t, IsRole("HR_ADMIN"))
	require.False(t, IsRole("hr_admin"))
	require.False(t, IsRole("SUPERUSER"))
}
