package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash is a bcrypt hash; the plaintext is never stored and the hash
// never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserToken is one currently-honored session token for a user. A token that
// verifies cryptographically but has no matching row has been revoked.
type UserToken struct {
	UserID   string
	Token    string
	Purpose  string
	IssuedAt time.Time
}
