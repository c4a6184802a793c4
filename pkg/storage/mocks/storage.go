// Package mocks provides a testify mock of the Storage interface for handler
// and component tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// Storage is a mock type for the storage.Storage interface.
type Storage struct {
	mock.Mock
}

// Make sure we conform to the interface
var _ storage.Storage = (*Storage)(nil)

func (m *Storage) GetUser(ctx context.Context, username string) (*models.UserRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

func (m *Storage) PutUser(ctx context.Context, user *models.UserRecord) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Storage) FindUserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

func (m *Storage) CurrentUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Storage) SetCurrentUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Storage) ClearCurrentUser(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Storage) GetLedgerState(ctx context.Context, username string) (*models.LedgerState, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerState), args.Error(1)
}

func (m *Storage) PutLedgerState(ctx context.Context, state *models.LedgerState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *Storage) AppendLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Storage) ListLedgerEntries(ctx context.Context, username string, limit int) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *Storage) ClearLedgerEntries(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Storage) GetAnchor(ctx context.Context, username string) (*models.TimerAnchorRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimerAnchorRecord), args.Error(1)
}

func (m *Storage) PutAnchor(ctx context.Context, anchor *models.TimerAnchorRecord) error {
	args := m.Called(ctx, anchor)
	return args.Error(0)
}

func (m *Storage) RemoveAnchor(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *Storage) GetActivationCode(ctx context.Context, username string) (*models.ActivationCode, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivationCode), args.Error(1)
}

func (m *Storage) PutActivationCode(ctx context.Context, code *models.ActivationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *Storage) GetStage(ctx context.Context, username string) (models.WorkflowStage, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.WorkflowStage), args.Error(1)
}

func (m *Storage) PutStage(ctx context.Context, username string, stage models.WorkflowStage) error {
	args := m.Called(ctx, username, stage)
	return args.Error(0)
}
