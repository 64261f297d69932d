// Package authstate carries session-state transitions from the identity
// boundary to whoever needs them, replacing the callback-style subscription
// of the original client with an explicit event channel.
package authstate

import (
	"sync"

	"github.com/nimbuslabs/nimbus/internal/platform/domain"
)

const subscriberBuffer = 16

// Broadcaster fans auth events out to subscribers. Delivery is at least
// once per subscriber; there is deliberately no ordering guarantee between
// an initial session check and the first published event.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	ch   chan domain.AuthEvent
	done chan struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]*subscription)}
}

// Subscribe registers a new subscriber and returns its event channel plus an
// unsubscribe function. The unsubscribe function is idempotent and must be
// called when the owner goes away.
func (b *Broadcaster) Subscribe() (<-chan domain.AuthEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++

	sub := &subscription{
		ch:   make(chan domain.AuthEvent, subscriberBuffer),
		done: make(chan struct{}),
	}
	b.subs[id] = sub

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.done)
		})
	}

	return sub.ch, unsubscribe
}

// Publish delivers ev to every current subscriber. A subscriber that has
// unsubscribed mid-delivery is skipped; one with a full buffer blocks the
// publisher until it drains or unsubscribes.
func (b *Broadcaster) Publish(ev domain.AuthEvent) {
	b.mu.Lock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
