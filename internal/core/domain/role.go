package domain

// Role is the closed set of actor roles the portal recognises.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleSchoolAdmin Role = "school_admin"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
)

// Roles lists every canonical role. Treat as the single source of truth for
// validation.
var Roles = []Role{
	RoleSuperAdmin,
	RoleTenantAdmin,
	RoleSchoolAdmin,
	RoleTeacher,
	RoleStudent,
}

// KnownRole reports whether r is one of the canonical roles.
func KnownRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ResolveRole normalises a raw role value into a canonical Role. The backend
// historically stored roles either as a single string or as a list; when a
// list is given the first element is the primary role.
//
// Unrecognised or missing input resolves to RoleStudent. The fallback is
// load-bearing: legacy accounts with no role field land on the student menu
// instead of a locked-out page. Callers are expected to log when they pass
// something unrecognised. See DESIGN.md for the open question around
// failing closed instead.
func ResolveRole(raw ...string) Role {
	if len(raw) == 0 {
		return RoleStudent
	}
	if r := Role(raw[0]); KnownRole(r) {
		return r
	}
	return RoleStudent
}
