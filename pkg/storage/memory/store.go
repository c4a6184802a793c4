package memory

import (
	"sync"

	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// Store implements the Storage interface with in-process maps. It backs tests
// and any embedding that does not need durability across restarts.
type Store struct {
	mu sync.RWMutex

	users   map[string]models.UserRecord
	session string
	ledgers map[string]models.LedgerState
	feeds   map[string][]models.LedgerEntry
	anchors map[string]models.TimerAnchorRecord
	codes   map[string]models.ActivationCode
	stages  map[string]models.WorkflowStage
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:   make(map[string]models.UserRecord),
		ledgers: make(map[string]models.LedgerState),
		feeds:   make(map[string][]models.LedgerEntry),
		anchors: make(map[string]models.TimerAnchorRecord),
		codes:   make(map[string]models.ActivationCode),
		stages:  make(map[string]models.WorkflowStage),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
