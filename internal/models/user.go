package models

// Role is a user's capability within the pizza application.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// UserRole wraps a role the way the API serializes it.
type UserRole struct {
	Role Role `json:"role"`
}

// User is one record in the fixture user directory. Email is the unique
// lookup key; it must stay unique across the directory at all times.
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password,omitempty"`
	Roles    []UserRole `json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so handler mutations never alias store state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Roles = make([]UserRole, len(u.Roles))
	copy(cp.Roles, u.Roles)
	return &cp
}
