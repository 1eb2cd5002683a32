// Package permissions provides role checks for the portal.
//
// Roles:
//   - citizen: may file grievances and view/comment on their own
//   - department_admin: may additionally view and update grievances routed
//     to their department
//   - super_admin: full access
package permissions

// Role names
const (
	RoleCitizen         = "citizen"
	RoleDepartmentAdmin = "department_admin"
	RoleSuperAdmin      = "super_admin"
)

// IsAdmin reports whether the role carries grievance administration rights.
func IsAdmin(role string) bool {
	return role == RoleDepartmentAdmin || role == RoleSuperAdmin
}

// IsValidRole reports whether the role is one of the known portal roles.
func IsValidRole(role string) bool {
	return role == RoleCitizen || role == RoleDepartmentAdmin || role == RoleSuperAdmin
}

// CanViewGrievance reports whether a user may view a grievance.
// Owners always may; admins may regardless of ownership.
func CanViewGrievance(role, userID, ownerID string) bool {
	if userID != "" && userID == ownerID {
		return true
	}
	return IsAdmin(role)
}

// CanUpdateStatus reports whether a user may move a grievance through
// the workflow (pending -> in_progress -> resolved/rejected).
func CanUpdateStatus(role string) bool {
	return IsAdmin(role)
}
