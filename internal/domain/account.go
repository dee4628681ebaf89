package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the account roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleHOD     Role = "hod"
)

// Landing pages returned after a successful login.
const (
	LandingMain    = "/main.html"
	LandingFaculty = "/faculty.html"
	LandingHOD     = "/hod.html"
	LandingLogin   = "/login.html"
	LandingSignup  = "/signup.html"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleHOD:
		return true
	}
	return false
}

// LandingPage maps a role to the page a client should open after login.
func (r Role) LandingPage() string {
	switch r {
	case RoleFaculty:
		return LandingFaculty
	case RoleHOD:
		return LandingHOD
	default:
		return LandingMain
	}
}

// ParseRole validates a client supplied role.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}

// Account is a registered user. Role is fixed at creation.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NormalizeEmail is applied before any email is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
