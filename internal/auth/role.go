package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Authorization is a flat
// membership test against a per-endpoint required set; no role implies
// another.
type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleCampusChief      Role = "campus_chief"
	RoleDepartmentHead   Role = "department_head"
	RoleFaculty          Role = "faculty"
	RoleAdmissionOfficer Role = "admission_officer"
	RoleITSupport        Role = "it_support"
	RoleStudent          Role = "student"
)

var allRoles = []Role{
	RoleSuperAdmin,
	RoleCampusChief,
	RoleDepartmentHead,
	RoleFaculty,
	RoleAdmissionOfficer,
	RoleITSupport,
	RoleStudent,
}

// ParseRole normalizes and validates a role string. Unknown roles fail
// closed.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(strings.ToLower(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Authorize allows the actor role iff it appears in the required set.
// Callers must run this before any mutating logic and before any audit
// write; a denial terminates the request with a 403.
func Authorize(actor Role, required ...Role) error {
	for _, r := range required {
		if actor == r {
			return nil
		}
	}
	return ErrForbidden
}
