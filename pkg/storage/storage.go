package storage

// RegistryStore defines the set of operations needed by the account registry.
// It composes other interfaces to provide a clear boundary for identity data
// access.
type RegistryStore interface {
	UserStore
	SessionStore
}

// WorkflowStore defines the operations needed by the workflow state machine,
// which sequences the registry, code issuer, timer, and simulator.
type WorkflowStore interface {
	UserStore
	SessionStore
	CodeStore
	AnchorStore
	StageStore
	LedgerStore
}

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (RegistryStore, LedgerStore, etc.) instead of
// this one.
type Storage interface {
	UserStore
	SessionStore
	LedgerStore
	AnchorStore
	CodeStore
	StageStore
}
