package memory

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// GetAnchor retrieves a user's anchor, or nil when none is active.
func (s *Store) GetAnchor(ctx context.Context, username string) (*models.TimerAnchorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anchor, ok := s.anchors[username]
	if !ok {
		return nil, nil
	}
	return &anchor, nil
}

// PutAnchor stores an anchor record.
func (s *Store) PutAnchor(ctx context.Context, anchor *models.TimerAnchorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.anchors[anchor.Username] = *anchor
	return nil
}

// RemoveAnchor deletes a user's anchor.
func (s *Store) RemoveAnchor(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.anchors, username)
	return nil
}
