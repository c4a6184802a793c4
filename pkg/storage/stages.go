package storage

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// StageStore defines the interface for the persisted workflow stage marker.
type StageStore interface {
	// GetStage retrieves the current stage for a username, or "" when the
	// user has never advanced past registration.
	GetStage(ctx context.Context, username string) (models.WorkflowStage, error)

	// PutStage stores the current stage for a username.
	PutStage(ctx context.Context, username string, stage models.WorkflowStage) error
}
