package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chris/onboarding-funnel/pkg/models"
)

const userKeyPrefix = "user:"

// GetUser retrieves a user record by username, or nil if unregistered.
func (s *Store) GetUser(ctx context.Context, username string) (*models.UserRecord, error) {
	var user models.UserRecord
	found, err := s.getValue(ctx, userKeyPrefix+username, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// PutUser stores a user record wholesale, keyed by username.
func (s *Store) PutUser(ctx context.Context, user *models.UserRecord) error {
	return s.setValue(ctx, userKeyPrefix+user.Username, user)
}

// FindUserByEmail scans the registry for a record holding the given email.
// The registry is small by construction (one logical operator), so a prefix
// scan is fine here.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM kv WHERE key LIKE ?`, userKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to scan user records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var user models.UserRecord
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("failed to decode user record: %w", err)
		}
		if user.Email == email {
			return &user, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
