package enum

// Role represents a user role. Privileged endpoints re-check the role
// server-side on every request; the UI hiding a button is not authorization.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAccounts Role = "accounts"
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAccounts, RoleManager, RoleStaff:
		return true
	}
	return false
}

// CanManagePayments reports whether the role may record vendor payments
func (r Role) CanManagePayments() bool {
	return r == RoleAdmin || r == RoleAccounts
}
