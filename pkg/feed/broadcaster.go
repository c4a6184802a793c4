package feed

import (
	"context"
	"log/slog"
	"sync"
)

// Broadcaster is the default in-process Publisher. Subscribers receive every
// published message on a buffered channel; a subscriber that falls behind has
// its oldest messages dropped rather than blocking the simulator.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Message]struct{})}
}

// Make sure we conform to the interface
var _ Publisher = (*Broadcaster)(nil)

// Subscribe registers a new observer and returns its channel along with a
// cancel function that must be called when the observer is done.
func (b *Broadcaster) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish sends a message to all current subscribers.
func (b *Broadcaster) Publish(ctx context.Context, message Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- message:
		default:
			// Slow subscriber: drop the oldest message to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- message:
			default:
				slog.WarnContext(ctx, "feed subscriber not keeping up, message dropped", "type", message.Type)
			}
		}
	}
	return nil
}

// NoOpPublisher is a mock publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
