package storage

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// CodeStore defines the interface for issued activation codes. Issuing
// overwrites any prior code for the username; successful verification does
// not delete the record.
type CodeStore interface {
	// GetActivationCode retrieves the last issued code for a username, or nil
	// when none has been issued.
	GetActivationCode(ctx context.Context, username string) (*models.ActivationCode, error)

	// PutActivationCode stores a code, replacing any prior one.
	PutActivationCode(ctx context.Context, code *models.ActivationCode) error
}
