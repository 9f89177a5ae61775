package sync

import (
	"sync"

	"github.com/fourone/pos/internal/client/storage"
)

// EventType classifies sync lifecycle events surfaced to the UI.
type EventType string

const (
	// EventQueued fires when a mutation is captured for later replay.
	EventQueued EventType = "queued"
	// EventSynced fires when the server confirms a queued operation.
	EventSynced EventType = "synced"
	// EventRetried fires when a replay attempt fails and will be retried.
	EventRetried EventType = "retried"
	// EventExhausted fires when an operation runs out of automatic
	// attempts and needs operator attention.
	EventExhausted EventType = "exhausted"
)

// Event is one sync lifecycle notification.
type Event struct {
	Type          EventType
	CorrelationID string
	Entity        storage.EntityKind
	Kind          storage.OperationKind
	Err           error
}

// Observer receives sync events. Observers run synchronously on the
// publishing goroutine and must not block.
type Observer func(Event)

// Notifier is an explicit observer registry bridging the sync engine
// and its callers. Registration hands back an unregister function; there
// is no ambient event bus.
type Notifier struct {
	mu        sync.Mutex
	observers map[int]Observer
	next      int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{observers: make(map[int]Observer)}
}

// Register adds an observer and returns its unregister function.
func (n *Notifier) Register(obs Observer) func() {
	n.mu.Lock()
	id := n.next
	n.next++
	n.observers[id] = obs
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.observers, id)
		n.mu.Unlock()
	}
}

// Publish delivers an event to every registered observer.
func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.Unlock()

	for _, obs := range observers {
		obs(event)
	}
}
