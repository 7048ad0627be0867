package auth

// UserRole is the portal role carried on every user record and session token
type UserRole string

const (
	// RoleStudent can browse and register for events
	RoleStudent UserRole = "student"
	// RoleOrganizer can manage events and volunteers
	RoleOrganizer UserRole = "organizer"
	// RoleAdmin can view aggregate reports across classes
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined portal roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleStudent:   0,
		RoleOrganizer: 1,
		RoleAdmin:     2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleStudent,
		RoleOrganizer,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
