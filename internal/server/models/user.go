// Package models holds the server-side records persisted by repositories.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the raw
// password is never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
