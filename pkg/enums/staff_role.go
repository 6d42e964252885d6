package enums

import "fmt"

// StaffRole is the permissions role of a restaurant staff account. Values
// match the rol column of vendedores.
type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleManager StaffRole = "gerente"
	StaffRoleCashier StaffRole = "cajero"
	StaffRoleWaiter  StaffRole = "mesero"
	StaffRoleKitchen StaffRole = "cocinero"
)

var validStaffRoles = []StaffRole{
	StaffRoleAdmin,
	StaffRoleManager,
	StaffRoleCashier,
	StaffRoleWaiter,
	StaffRoleKitchen,
}

// String implements fmt.Stringer.
func (s StaffRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StaffRole.
func (s StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
