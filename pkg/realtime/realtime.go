// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out catalog reload events to multiple listeners (WebSocket
// sessions of the web UI).
//
// Delivery is best effort: slow listeners drop events rather than
// backpressure the reload path, and there is no persistence or replay. The
// stream is ephemeral by design; a browser that missed an event simply
// keeps showing the previous catalog until the next one.
package realtime

import (
	"sync"
	"time"
)

// ReloadEvent announces that the communication catalog was rebuilt, e.g.
// because the items document changed on disk. Connected browsers refresh
// their current view in response.
type ReloadEvent struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	// Count is the number of comms in the rebuilt catalog.
	Count int `json:"count"`
}

// NewReloadEvent constructs a reload event for a catalog of the given size.
func NewReloadEvent(count int) ReloadEvent {
	return ReloadEvent{Type: "reload", At: time.Now(), Count: count}
}

// Hub is an in-memory fan-out dispatcher. Each registered listener receives
// events via its own buffered channel; if a listener's buffer is full when
// an event arrives, that event is dropped for that listener only.
//
// The hub is concurrency-safe.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan ReloadEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// If bufSize <= 0, a default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[uint64]chan ReloadEvent),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns (listenerID, receiveOnlyChannel).
// Callers must later Unregister(id) to release resources.
func (h *Hub) Register() (uint64, <-chan ReloadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan ReloadEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// It is safe to call multiple times; unknown ids are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers an event to all registered listeners (best effort).
func (h *Hub) Broadcast(event ReloadEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- event:
		default:
			// Drop for slow listener.
		}
	}
}

// Size returns the current number of active listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
