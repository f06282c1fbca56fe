package cart

import (
	"sync"
	"time"

	"github.com/harshava123/powderlegacy/internal/domain"
)

// DefaultNotificationTTL matches the storefront toast duration.
const DefaultNotificationTTL = 3 * time.Second

// Notification is the transient "item added" toast state for one session.
type Notification struct {
	Item    *domain.CartLineItem `json:"item"`
	ShownAt time.Time            `json:"shown_at"`
}

// Notifier is the view-layer consumer of cart mutation events. It keeps the
// most recent "item added" notification per session and expires it after a
// fixed duration; each add resets the timer.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current map[string]*Notification
	timers  map[string]*time.Timer
}

// NewNotifier creates a notifier with the given toast lifetime and wires it
// to the store's event stream.
func NewNotifier(store *Store, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	n := &Notifier{
		ttl:     ttl,
		current: make(map[string]*Notification),
		timers:  make(map[string]*time.Timer),
	}
	store.Subscribe(n.onEvent)
	return n
}

func (n *Notifier) onEvent(e Event) {
	if e.Type != EventItemAdded || e.Item == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current[e.SessionID] = &Notification{Item: e.Item, ShownAt: time.Now()}
	if t, ok := n.timers[e.SessionID]; ok {
		t.Stop()
	}
	sessionID := e.SessionID
	n.timers[sessionID] = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		delete(n.current, sessionID)
		delete(n.timers, sessionID)
		n.mu.Unlock()
	})
}

// Current returns the active notification for a session, or nil once expired.
func (n *Notifier) Current(sessionID string) *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current[sessionID]
}

// Dismiss clears a session's notification before its timer fires.
func (n *Notifier) Dismiss(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.timers[sessionID]; ok {
		t.Stop()
		delete(n.timers, sessionID)
	}
	delete(n.current, sessionID)
}
