package models

// Role classifies the authorization level of an account.
type Role string

const (
	// RoleAdmin grants access to the admin screens and management operations.
	RoleAdmin Role = "admin"

	// RoleManager is an ordinary user with team visibility on the backend.
	// The client treats it the same as an employee.
	RoleManager Role = "manager"

	// RoleEmployee is the default role for registered users.
	RoleEmployee Role = "employee"
)

// ParseRole maps a raw role string from the backend to a Role.
// Unrecognized or empty values fall back to RoleEmployee so that a
// malformed role can never unlock admin screens.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleEmployee
	}
}

// IsAdmin reports whether the role unlocks admin screens.
// Only the exact admin role qualifies; anything else is ordinary.
func (r Role) IsAdmin() bool {
	return ParseRole(string(r)) == RoleAdmin
}
