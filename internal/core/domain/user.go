package domain

import "time"

// Role is the closed enumeration of authorization roles. New roles must be
// added here and to IsValid; RBAC checks reject anything outside the set.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role belongs to the closed enumeration.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanManageUsers reports whether the role may list, create, or delete users.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
