package service

import (
	"sync"

	"github.com/homevista/homevista-backend/internal/domain"
)

// AuthEventType identifies what changed about a session
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "SIGNED_IN"
	AuthEventSignedOut      AuthEventType = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
)

// AuthEvent is delivered to subscribers whenever a session is created,
// rotated, or destroyed.
type AuthEvent struct {
	Type    AuthEventType
	Session *domain.Session
}

// AuthSubscription is a handle to an auth-change event stream. Delivery
// stops once Unsubscribe is called; Unsubscribe is idempotent.
type AuthSubscription struct {
	C <-chan AuthEvent

	once   sync.Once
	cancel func()
}

// Unsubscribe stops event delivery and releases the subscription
func (s *AuthSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// AuthBroker fans auth-change events out to subscribers. Publishing never
// blocks; a subscriber that falls behind loses events rather than stalling
// the publisher.
type AuthBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan AuthEvent
}

// NewAuthBroker creates a new AuthBroker
func NewAuthBroker() *AuthBroker {
	return &AuthBroker{
		subs: make(map[int]chan AuthEvent),
	}
}

// Subscribe registers a new subscriber
func (b *AuthBroker) Subscribe() *AuthSubscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan AuthEvent, 16)
	b.subs[id] = ch

	return &AuthSubscription{
		C: ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		},
	}
}

// Publish delivers an event to all current subscribers
func (b *AuthBroker) Publish(event AuthEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *AuthBroker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
