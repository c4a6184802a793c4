package sqlite

import "context"

const sessionKey = "session"

// CurrentUser returns the logged-in username, or "" when no session is active.
func (s *Store) CurrentUser(ctx context.Context) (string, error) {
	var username string
	found, err := s.getValue(ctx, sessionKey, &username)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return username, nil
}

// SetCurrentUser points the session at the given username.
func (s *Store) SetCurrentUser(ctx context.Context, username string) error {
	return s.setValue(ctx, sessionKey, username)
}

// ClearCurrentUser removes the session pointer unconditionally.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.removeValue(ctx, sessionKey)
}
