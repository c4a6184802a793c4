package feed

import (
	"context"
)

// Publisher defines the interface for publishing simulator events to
// observers of the transaction feed.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
