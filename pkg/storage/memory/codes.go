package memory

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

// GetActivationCode retrieves the last issued code for a username, or nil.
func (s *Store) GetActivationCode(ctx context.Context, username string) (*models.ActivationCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.codes[username]
	if !ok {
		return nil, nil
	}
	return &code, nil
}

// PutActivationCode stores a code, replacing any prior one.
func (s *Store) PutActivationCode(ctx context.Context, code *models.ActivationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[code.Username] = *code
	return nil
}
