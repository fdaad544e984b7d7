package auth

import "sync"

// EventType identifies an auth state transition.
type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

// Event describes a single auth state change. Identity is nil for sign-out.
type Event struct {
	Type     EventType
	Identity *Identity
}

// Notifier fans auth state changes out to subscribers. Deliveries happen
// under the lock, so subscribers observe events in publish order and receive
// nothing after their unsubscribe (or Close) has returned.
type Notifier struct {
	mu     sync.Mutex
	closed bool
	nextID int
	subs   map[int]func(Event)
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns its unsubscribe handle. Unsubscribing
// twice is harmless.
func (n *Notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if !n.closed {
		n.subs[id] = fn
	}

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers the event to every current subscriber.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	for _, fn := range n.subs {
		fn(e)
	}
}

// Close tears the notifier down; later publishes and subscriptions are no-ops.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.subs = make(map[int]func(Event))
}
