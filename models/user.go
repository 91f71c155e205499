package models

import (
	"time"
)

// Roles known to the system. Tokens carry exactly one of these.
const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleVisitor = "visitor"
)

// User represents a registered account
type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email,omitempty" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	APIKeyEnc    string     `json:"-" db:"api_key_enc"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// RegisterForm represents the payload for creating a new account
type RegisterForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the registration form data
func (f *RegisterForm) Validate() []string {
	var errors []string

	if f.Username == "" {
		errors = append(errors, "Username is required")
	}

	if len(f.Username) > 64 {
		errors = append(errors, "Username must be less than 64 characters")
	}

	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	if !IsValidRole(f.Role) {
		errors = append(errors, "Role must be one of admin, user, visitor")
	}

	return errors
}

// LoginForm represents the payload for exchanging credentials for a token
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if f.Username == "" {
		errors = append(errors, "Username is required")
	}

	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}

// IsValidRole reports whether role is one of the closed role set
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser || role == RoleVisitor
}
