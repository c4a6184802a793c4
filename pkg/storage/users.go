package storage

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// UserStore defines the interface for managing user records.
//
// Reads of absent usernames return (nil, nil): a missing key is a defined
// default, never an error, so callers branch on the value rather than on an
// error sentinel.
type UserStore interface {
	// GetUser retrieves a user record by username, or nil if unregistered.
	GetUser(ctx context.Context, username string) (*models.UserRecord, error)

	// PutUser stores a user record wholesale, keyed by username.
	PutUser(ctx context.Context, user *models.UserRecord) error

	// FindUserByEmail retrieves the user record holding the given email, or
	// nil if no record has it. Emails are globally unique across records.
	FindUserByEmail(ctx context.Context, email string) (*models.UserRecord, error)
}
