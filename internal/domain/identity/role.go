package identity

import "github.com/packmart/backend/internal/domain/shared"

// Role is the enumerated role assigned to an admin-console user.
// Authorization decisions go through the capability methods below, never
// through string comparison at call sites.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole validates and converts a stored role value
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleViewer, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return Role(value), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown role: "+value)
	}
}

// IsValid reports whether the role is one of the enumerated values
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanViewAdmin reports whether the role grants read access to the admin console
func (r Role) CanViewAdmin() bool {
	return r.IsValid()
}

// CanManageContent reports whether the role may create or edit blog content
func (r Role) CanManageContent() bool {
	switch r {
	case RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanReplyContacts reports whether the role may reply to contact messages
func (r Role) CanReplyContacts() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageOrders reports whether the role may view and fulfil orders
func (r Role) CanManageOrders() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may administer other users
func (r Role) CanManageUsers() bool {
	return r == RoleSuperAdmin
}
