package models

import "time"

// LoginAttempt is one audited login outcome. UserID is nil when the
// username did not resolve to an account.
type LoginAttempt struct {
	ID         int64
	Username   string
	UserID     *int64
	Success    bool
	RemoteAddr string
	CreatedAt  time.Time
}
