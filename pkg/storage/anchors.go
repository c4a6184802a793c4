package storage

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// AnchorStore defines the interface for active countdown anchors. An anchor
// is present only while its countdown is running; removal marks completion.
type AnchorStore interface {
	// GetAnchor retrieves a user's anchor, or nil when none is active.
	GetAnchor(ctx context.Context, username string) (*models.TimerAnchorRecord, error)

	// PutAnchor stores an anchor record.
	PutAnchor(ctx context.Context, anchor *models.TimerAnchorRecord) error

	// RemoveAnchor deletes a user's anchor. Removing an absent anchor is not
	// an error.
	RemoveAnchor(ctx context.Context, username string) error
}
