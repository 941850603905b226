package models

// RoleAdmin is the host role allowed to set the global criteria selection
const RoleAdmin = "admin"

// User is the caller as identified by the host application. The host owns
// authentication; this service only sees the resolved identity.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsAdmin reports whether the user has the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
