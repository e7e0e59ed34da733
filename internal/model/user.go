package model

import "time"

// UserID uniquely identifies an authenticated user
type UserID string

// User represents an account known to the identity layer
type User struct {
	ID          UserID
	DisplayName string
	Avatar      string
	IsGuest     bool // true for unregistered users
	IsAdmin     bool
	CreatedAt   time.Time
}

// RegisteredUser extends User with authentication data.
// Stored separately so the password hash never travels with sessions.
type RegisteredUser struct {
	UserID       UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
