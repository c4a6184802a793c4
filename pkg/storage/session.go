package storage

import "context"

// SessionStore defines the interface for the single current-session pointer.
// At most one username is logged in at a time.
type SessionStore interface {
	// CurrentUser returns the logged-in username, or "" when no session is
	// active.
	CurrentUser(ctx context.Context) (string, error)

	// SetCurrentUser points the session at the given username.
	SetCurrentUser(ctx context.Context, username string) error

	// ClearCurrentUser removes the session pointer unconditionally.
	ClearCurrentUser(ctx context.Context) error
}
