package memory

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// GetStage retrieves the current stage for a username, or "".
func (s *Store) GetStage(ctx context.Context, username string) (models.WorkflowStage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stages[username], nil
}

// PutStage stores the current stage for a username.
func (s *Store) PutStage(ctx context.Context, username string, stage models.WorkflowStage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[username] = stage
	return nil
}
