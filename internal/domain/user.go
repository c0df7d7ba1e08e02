package domain

import "time"

// User role constants.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents the authenticated user of the current session, as issued
// by the backend auth service.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
