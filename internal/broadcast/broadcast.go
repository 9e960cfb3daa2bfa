// ABOUTME: Process-scoped publish/subscribe channel for language-change events
// ABOUTME: Delivery order across subscribers is unspecified

package broadcast

import (
	"sync"

	"github.com/jambosec/jambosec-cli/internal/i18n"
)

// LanguageChanged is published when any surface switches the UI language.
type LanguageChanged struct {
	Lang i18n.Lang
}

// Channel fans out language-change events to every subscriber. Surfaces that
// subscribe after an event was published do not receive it; they are expected
// to read the persisted language on their own startup instead.
type Channel struct {
	mu   sync.Mutex
	next int
	subs map[int]func(LanguageChanged)
}

// NewChannel creates an empty broadcast channel.
func NewChannel() *Channel {
	return &Channel{subs: make(map[int]func(LanguageChanged))}
}

// Subscribe registers a handler and returns an unsubscribe function. The
// handler runs synchronously on the publisher's goroutine.
func (c *Channel) Subscribe(fn func(LanguageChanged)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Publish delivers the event to every current subscriber.
func (c *Channel) Publish(event LanguageChanged) {
	c.mu.Lock()
	handlers := make([]func(LanguageChanged), 0, len(c.subs))
	for _, fn := range c.subs {
		handlers = append(handlers, fn)
	}
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}
