// Package events delivers update notifications from the polling core to
// UI consumers. Channels are buffered and emits never block: a slow
// consumer misses a tick rather than stalling the poll loop.
package events

import (
	"context"
	"sync"
)

// Hub fans out notifications to subscribers
type Hub struct {
	mu   sync.RWMutex
	subs map[chan struct{}]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a new listener. Unsubscribe with the same channel.
func (h *Hub) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

// Unsubscribe removes a listener and closes its channel. Safe to call
// with a channel that was already removed.
func (h *Hub) Unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Emit notifies all subscribers without blocking; a subscriber whose
// buffer is full simply coalesces this tick into the pending one
func (h *Hub) Emit(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
			return
		case sub <- struct{}{}:
		default:
		}
	}
}
