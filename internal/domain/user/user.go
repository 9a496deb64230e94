package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// User is the identity handed to handlers and serialized to clients. It
// deliberately has no password-hash field; only Credential carries one, and
// Credential never leaves the authentication flow.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Credential struct {
	User
	PasswordHash string
}
