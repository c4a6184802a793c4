package sqlite

import (
	"context"

	"github.com/chris/onboarding-funnel/pkg/models"
)

const codeKeyPrefix = "code:"

// GetActivationCode retrieves the last issued code for a username, or nil.
func (s *Store) GetActivationCode(ctx context.Context, username string) (*models.ActivationCode, error) {
	var code models.ActivationCode
	found, err := s.getValue(ctx, codeKeyPrefix+username, &code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &code, nil
}

// PutActivationCode stores a code, replacing any prior one.
func (s *Store) PutActivationCode(ctx context.Context, code *models.ActivationCode) error {
	return s.setValue(ctx, codeKeyPrefix+code.Username, code)
}
