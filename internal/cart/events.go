package cart

import (
	"sync"

	"github.com/harshava123/powderlegacy/internal/domain"
)

// EventType tags a cart mutation event
type EventType string

const (
	EventItemAdded   EventType = "item_added"
	EventItemUpdated EventType = "item_updated"
	EventItemRemoved EventType = "item_removed"
	EventCleared     EventType = "cleared"
)

// Event is emitted by the Store on every mutation. The store owns no timers;
// view-layer consumers such as the toast Notifier decide how long an event
// stays visible.
type Event struct {
	Type      EventType
	SessionID string
	Item      *domain.CartLineItem
}

type broker struct {
	mu          sync.RWMutex
	subscribers []func(Event)
}

func (b *broker) subscribe(fn func(Event)) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, fn)
	b.mu.Unlock()
}

func (b *broker) publish(e Event) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(e)
	}
}
