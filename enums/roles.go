package enums

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleDonor      Role = "donor"
)

// StaffRoles may review donations.
var StaffRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleStaff}

// ImportRoles may upload mosque spreadsheets.
var ImportRoles = []Role{RoleSuperAdmin, RoleAdmin}

func (r Role) In(roles []Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
