// Package authz resolves application roles for a request and enforces
// required-role route metadata.
package authz

import "strings"

// Role is an application-level role carried by users, headers or tokens.
// The set is closed; unknown tokens are dropped during parsing.
type Role string

const (
	RoleHRAdmin           Role = "HR_ADMIN"
	RoleHRBP              Role = "HRBP"
	RolePayroll           Role = "PAYROLL"
	RoleFinance           Role = "FINANCE"
	RoleExec              Role = "EXEC"
	RoleManager           Role = "MANAGER"
	RoleEmployee          Role = "EMPLOYEE"
	RoleComplianceOfficer Role = "COMPLIANCE_OFFICER"
	RoleITAssetAdmin      Role = "IT_ASSET_ADMIN"
	RoleAuditor           Role = "AUDITOR"
)

// RoleKey is the normalized internal vocabulary consumed by business-rule
// guards. Several application roles collapse onto one key.
type RoleKey string

const (
	KeySystemOwner       RoleKey = "SYSTEM_OWNER"
	KeyHRBusinessPartner RoleKey = "HR_BUSINESS_PARTNER"
	KeyManager           RoleKey = "MANAGER"
	KeySupervisor        RoleKey = "SUPERVISOR"
	KeyEmployee          RoleKey = "EMPLOYEE"
	KeyAuditor           RoleKey = "AUDITOR"
)

// appRoles preserves the canonical ordering of the role set.
var appRoles = []Role{
	RoleHRAdmin,
	RoleHRBP,
	RolePayroll,
	RoleFinance,
	RoleExec,
	RoleManager,
	RoleEmployee,
	RoleComplianceOfficer,
	RoleITAssetAdmin,
	RoleAuditor,
}

var validRoles = func() map[Role]struct{} {
	set := make(map[Role]struct{}, len(appRoles))
	for _, r := range appRoles {
		set[r] = struct{}{}
	}
	return set
}()

// roleKeyMap maps each application role to its role keys. A role may map to
// zero, one or several keys. KeySupervisor is never granted here; the
// communications module derives it from team supervision.
var roleKeyMap = map[Role][]RoleKey{
	RoleHRAdmin:           {KeySystemOwner},
	RoleHRBP:              {KeyHRBusinessPartner},
	RolePayroll:           {KeySystemOwner},
	RoleFinance:           {KeySystemOwner},
	RoleExec:              {KeySystemOwner},
	RoleManager:           {KeyManager},
	RoleEmployee:          {KeyEmployee},
	RoleComplianceOfficer: {KeyAuditor},
	RoleITAssetAdmin:      {KeySystemOwner},
	RoleAuditor:           {KeyAuditor},
}

// AllRoles returns the closed application role set in canonical order.
func AllRoles() []Role {
	out := make([]Role, len(appRoles))
	copy(out, appRoles)
	return out
}

// IsRole reports whether value names a known application role.
func IsRole(value string) bool {
	_, ok := validRoles[Role(value)]
	return ok
}

// ParseRoles tokenizes a comma-separated role string. Tokens are trimmed and
// uppercased before validation; empty and unknown tokens are dropped without
// error so legacy header values never fail a request.
func ParseRoles(raw string) []Role {
	if raw == "" {
		return nil
	}
	var roles []Role
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token == "" || !IsRole(token) {
			continue
		}
		roles = append(roles, Role(token))
	}
	return roles
}

// MergeRoles unions the parsed roles of every source string, preserving
// first-seen order across sources and dropping duplicates. Absent sources
// contribute nothing; an all-empty result is valid.
func MergeRoles(sources ...string) []Role {
	seen := make(map[Role]struct{})
	var merged []Role
	for _, source := range sources {
		for _, role := range ParseRoles(source) {
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			merged = append(merged, role)
		}
	}
	return merged
}

// RolesToKeys maps application roles to their de-duplicated role keys,
// preserving first-seen order.
func RolesToKeys(roles []Role) []RoleKey {
	seen := make(map[RoleKey]struct{})
	var keys []RoleKey
	for _, role := range roles {
		for _, key := range roleKeyMap[role] {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
