// Package events is the in-process signal bus that fans identity changes out
// to the cart and wishlist.
//
// Delivery is synchronous: Publish calls every subscriber, in subscription
// order, on the publishing goroutine and returns after the last one.
package events

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/footcap/internal/client/models"
)

// Event is implemented by every signal carried on the bus.
type Event interface {
	Name() string
}

// UserLoggedIn is published after a signup or login established a session.
type UserLoggedIn struct {
	User models.User
}

func (UserLoggedIn) Name() string { return "userLoggedIn" }

// UserLoggedOut is published after the session was cleared.
type UserLoggedOut struct{}

func (UserLoggedOut) Name() string { return "userLoggedOut" }

// Handler receives events. Its error is collected by Publish but does not
// stop delivery to later subscribers.
type Handler func(ctx context.Context, e Event) error

type subscription struct {
	id int
	fn Handler
}

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to a snapshot of the current subscribers, so handlers
// may subscribe or unsubscribe without deadlocking. The first handler error
// is returned after all handlers ran.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	var first error
	for _, s := range subs {
		if err := s.fn(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
