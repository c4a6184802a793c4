package sqlite

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

const anchorKeyPrefix = "anchor:"

// GetAnchor retrieves a user's anchor, or nil when none is active.
func (s *Store) GetAnchor(ctx context.Context, username string) (*models.TimerAnchorRecord, error) {
	var anchor models.TimerAnchorRecord
	found, err := s.getValue(ctx, anchorKeyPrefix+username, &anchor)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &anchor, nil
}

// PutAnchor stores an anchor record.
func (s *Store) PutAnchor(ctx context.Context, anchor *models.TimerAnchorRecord) error {
	return s.setValue(ctx, anchorKeyPrefix+anchor.Username, anchor)
}

// RemoveAnchor deletes a user's anchor.
func (s *Store) RemoveAnchor(ctx context.Context, username string) error {
	return s.removeValue(ctx, anchorKeyPrefix+username)
}
