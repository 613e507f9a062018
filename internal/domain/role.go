package domain

import "fmt"

// Role enumerates the three caller roles recognized by the service.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// ParseRole validates a wire-format role value.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleAgent, RoleUser:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unrecognized role %q", value)
	}
}

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller as attached by the auth middleware.
// It is threaded explicitly into every authorization call and never mutated.
type Identity struct {
	ID   string
	Role Role
}
