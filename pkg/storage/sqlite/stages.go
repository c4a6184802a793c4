package sqlite

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

const stageKeyPrefix = "stage:"

// GetStage retrieves the current stage for a username, or "".
func (s *Store) GetStage(ctx context.Context, username string) (models.WorkflowStage, error) {
	var stage models.WorkflowStage
	if _, err := s.getValue(ctx, stageKeyPrefix+username, &stage); err != nil {
		return "", err
	}
	return stage, nil
}

// PutStage stores the current stage for a username.
func (s *Store) PutStage(ctx context.Context, username string, stage models.WorkflowStage) error {
	return s.setValue(ctx, stageKeyPrefix+username, stage)
}
