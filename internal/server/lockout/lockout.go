// Package lockout throttles password guessing: after a number of failed
// logins for one username within a window, further attempts for that
// username are refused until the window passes.
package lockout

import (
	"context"
	"time"
)

// State is what a Store knows about one key.
type State struct {
	FailedCount int
	LockedUntil *time.Time
}

// Locked reports whether the key is locked at now.
func (s State) Locked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// Store persists failure counters. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (State, error)
	RecordFailure(ctx context.Context, key string, now time.Time, threshold int, window time.Duration) (State, error)
	Clear(ctx context.Context, key string) error
}

// Limiter applies a threshold and window on top of a Store. A nil *Limiter
// or a threshold of 0 never locks anybody.
type Limiter struct {
	store     Store
	threshold int
	window    time.Duration
	now       func() time.Time
}

func NewLimiter(store Store, threshold int, window time.Duration) *Limiter {
	return &Limiter{
		store:     store,
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

func (l *Limiter) enabled() bool {
	return l != nil && l.threshold > 0 && l.store != nil
}

// Locked reports whether username is currently locked out.
func (l *Limiter) Locked(ctx context.Context, username string) (bool, error) {
	if !l.enabled() {
		return false, nil
	}
	state, err := l.store.Get(ctx, username)
	if err != nil {
		return false, err
	}
	return state.Locked(l.now()), nil
}

// Fail records a failed login for username and reports whether it is now
// locked.
func (l *Limiter) Fail(ctx context.Context, username string) (bool, error) {
	if !l.enabled() {
		return false, nil
	}
	now := l.now()
	state, err := l.store.RecordFailure(ctx, username, now, l.threshold, l.window)
	if err != nil {
		return false, err
	}
	return state.Locked(now), nil
}

// Reset forgets previous failures of username after a successful login.
func (l *Limiter) Reset(ctx context.Context, username string) error {
	if !l.enabled() {
		return nil
	}
	return l.store.Clear(ctx, username)
}
