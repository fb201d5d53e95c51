package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User represents a member who can book rooms. The booking core only ever
// sees the ID; everything else exists for the auth glue around it.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsAdmin      bool
	CreatedAt    time.Time
}
