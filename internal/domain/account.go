package domain

import (
	"fmt"
	"time"
)

// Role is the access tier assigned at registration. It never changes afterwards.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole validates a role string supplied at registration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q: must be admin or staff", s)
	}
}

// Account represents a registered user. Accounts are immutable after creation;
// there is no update or delete operation.
//
// The credential is stored and compared as plain text. That is the documented
// behavior of this system and fixing it is out of scope.
type Account struct {
	Username   string    `json:"username" db:"username"`
	Credential string    `json:"-" db:"credential"`
	Role       Role      `json:"role" db:"role"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
