package auth

// Package auth contains domain-level types for identities, proofs and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
type Role string

const (
	RoleStudent      Role = "STUDENT"
	RoleAdmin        Role = "ADMIN"
	RoleCollegeAdmin Role = "COLLEGE_ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleCollegeAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	return r, r.Valid()
}

// Profile holds the optional, user-editable profile fields.
type Profile struct {
	Street         string `json:"street,omitempty"         db:"street"`
	City           string `json:"city,omitempty"           db:"city"`
	State          string `json:"state,omitempty"          db:"state"`
	ZipCode        string `json:"zipCode,omitempty"        db:"zip_code"`
	Country        string `json:"country,omitempty"        db:"country"`
	University     string `json:"university,omitempty"     db:"university"`
	Major          string `json:"major,omitempty"          db:"major"`
	GraduationYear string `json:"graduationYear,omitempty" db:"graduation_year"`
	GPA            string `json:"gpa,omitempty"            db:"gpa"`
}

// Principal is the reconciled identity used downstream of authentication.
// It mirrors the stored user record and never carries the password hash.
type Principal struct {
	ID    string `json:"id"              db:"id"`
	Name  string `json:"name"            db:"name"`
	Email string `json:"email"           db:"email"`
	Role  Role   `json:"role"            db:"role"`
	Image string `json:"image,omitempty" db:"image"`
	Profile
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasRole reports whether the principal holds any of the given roles.
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Credentials is the password material for a direct-login account.
// PasswordHash is empty for accounts provisioned through a federated provider.
type Credentials struct {
	UserID       string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

// Identity represents the authenticated subject asserted by a federated provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Provider  string // registry name, e.g. "google"
	Subject   string // stable provider-side identifier
	Email     string
	Name      string
	Image     string
	ExpiresAt time.Time // absolute expiry reported by the provider
}

// Session is the server-side federated session record persisted in Redis.
// ID is an opaque session identifier carried in the session_id cookie.
// UserID binds the session to the stored record provisioned at callback time.
type Session struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
