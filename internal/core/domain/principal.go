package domain

// Role names with built-in meaning. Roles are stored rows; these two grant
// full roster visibility and approval rights regardless of the permission map.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
	RoleGuest    = "Guest"
)

// Capability names, matching the keys of the role permission map.
const (
	CapManageEmployees   = "manage_employees"
	CapManageRoles       = "manage_roles"
	CapManageShifts      = "manage_shifts"
	CapManageAreas       = "manage_areas"
	CapManageSkills      = "manage_skills"
	CapViewAllRosters    = "view_all_rosters"
	CapApproveRosters    = "approve_rosters"
	CapApproveTimesheets = "approve_timesheets"
	CapViewAnalytics     = "view_analytics"
	CapExportData        = "export_data"
)

// Principal is the authenticated actor performing an action.
type Principal struct {
	EmployeeID  uint
	Email       string
	Role        string
	Permissions map[string]bool
}

// IsManagerOrAdmin reports whether the principal holds a supervisory role.
func (p Principal) IsManagerOrAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleManager
}

// Allowed is the single policy check for capability-guarded operations:
// Manager/Admin roles pass, everyone else needs the capability in their
// role's permission map.
func (p Principal) Allowed(capability string) bool {
	if p.IsManagerOrAdmin() {
		return true
	}
	return p.Permissions[capability]
}
