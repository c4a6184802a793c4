package memory

import "context"

// CurrentUser returns the logged-in username, or "" when no session is active.
func (s *Store) CurrentUser(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, nil
}

// SetCurrentUser points the session at the given username.
func (s *Store) SetCurrentUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = username
	return nil
}

// ClearCurrentUser removes the session pointer unconditionally.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	return nil
}
