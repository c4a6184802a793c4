package memory

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// GetUser retrieves a user record by username, or nil if unregistered.
func (s *Store) GetUser(ctx context.Context, username string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return cloneUser(&user), nil
}

// PutUser stores a user record wholesale, keyed by username.
func (s *Store) PutUser(ctx context.Context, user *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Username] = *cloneUser(user)
	return nil
}

// FindUserByEmail retrieves the user record holding the given email, or nil.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(&user), nil
		}
	}
	return nil, nil
}

// cloneUser deep-copies a record so callers never alias map-held state.
func cloneUser(user *models.UserRecord) *models.UserRecord {
	clone := *user
	if user.AccountDetails != nil {
		details := *user.AccountDetails
		if user.AccountDetails.QRImage != nil {
			details.QRImage = append([]byte(nil), user.AccountDetails.QRImage...)
		}
		clone.AccountDetails = &details
	}
	if user.AutodebitDetails != nil {
		details := *user.AutodebitDetails
		clone.AutodebitDetails = &details
	}
	if user.WithdrawalDetails != nil {
		details := *user.WithdrawalDetails
		clone.WithdrawalDetails = &details
	}
	return &clone
}
