// internal/models/role.go
package models

import "strings"

// Role is the closed set of user roles known to the backend.
type Role string

const (
	RoleHealthStaff Role = "health_staff"
	RoleTechnician  Role = "technician"
	RoleManager     Role = "manager"
	RoleQuality     Role = "quality"
)

// Roles lists every valid role in registration order.
var Roles = []Role{RoleHealthStaff, RoleTechnician, RoleManager, RoleQuality}

var roleLabels = map[Role]string{
	RoleHealthStaff: "Sağlık Personeli",
	RoleTechnician:  "Teknisyen",
	RoleManager:     "Yönetici",
	RoleQuality:     "Kalite Birimi",
}

// ParseRole maps a wire value onto the enumeration. Unknown values return
// false and the zero Role, which holds no capabilities.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := roleLabels[r]; !ok {
		return "", false
	}
	return r, true
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the Turkish display name, or the raw value for unknown roles.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r Role) String() string { return string(r) }
