package models

// Role represents the access class of an authenticated identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleTeam  Role = "team"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeam:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Identity is the logged-in principal. It is owned by the session store.
type Identity struct {
	ID            string `json:"id" yaml:"id"`
	Role          Role   `json:"role" yaml:"role"`
	DisplayHandle string `json:"displayHandle" yaml:"displayHandle"`
}

// LoginRequest is the body sent to the auth login endpoint.
type LoginRequest struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Role   Role   `json:"role"`
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// SessionCheck is the result of verifying an existing session.
type SessionCheck struct {
	Valid bool      `json:"valid"`
	User  *Identity `json:"user,omitempty"`
}
