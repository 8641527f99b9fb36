package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRegistration = errors.New("invalid registration input")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models a registered principal. PasswordHash is never serialized to
// clients and never logged.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
