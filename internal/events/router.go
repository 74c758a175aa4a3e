package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the default channel buffer size for subscribers.
const DefaultBufferSize = 256

// subscriber is one consumer channel and how many events it has missed.
type subscriber struct {
	name    string
	ch      chan Event
	dropped atomic.Uint64
}

// Router fans events out from the screen's event loop to its consumers
// (the renderer, the headless printer and the trace sink).
// Emit never blocks: a full subscriber misses the event and the drop is
// counted and logged.
type Router struct {
	mu          sync.RWMutex
	subscribers []*subscriber
	bufferSize  int
	closed      bool
	logger      *slog.Logger
}

// NewRouter creates a new event router with the specified default buffer size.
// If bufferSize is 0 or negative, DefaultBufferSize is used. A nil logger
// falls back to slog.Default.
func NewRouter(bufferSize int, logger *slog.Logger) *Router {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Emit publishes an event to all subscribers.
// Emit is safe to call concurrently and after Close (becomes a no-op).
func (r *Router) Emit(event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for _, sub := range r.subscribers {
		select {
		case sub.ch <- event:
		default:
			n := sub.dropped.Add(1)
			r.logger.Warn("event dropped: subscriber channel full",
				"subscriber", sub.name,
				"event_type", event.Type(),
				"dropped_total", n,
			)
		}
	}
}

// Subscribe returns a channel with the router's default buffer size.
// The returned channel is closed when the router is closed.
func (r *Router) Subscribe(name string) <-chan Event {
	return r.SubscribeBuffered(name, r.bufferSize)
}

// SubscribeBuffered returns a channel with the specified buffer size.
// The returned channel is closed when the router is closed.
func (r *Router) SubscribeBuffered(name string, size int) <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	sub := &subscriber{name: name, ch: make(chan Event, size)}
	r.subscribers = append(r.subscribers, sub)
	return sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
// It is safe to call with a channel that was never subscribed or already unsubscribed.
func (r *Router) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub.ch == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Dropped returns how many events the named subscriber has missed.
func (r *Router) Dropped(name string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total uint64
	for _, sub := range r.subscribers {
		if sub.name == name {
			total += sub.dropped.Load()
		}
	}
	return total
}

// Close closes all subscriber channels and marks the router as closed.
// Close is safe to call multiple times.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.closed = true
	for _, sub := range r.subscribers {
		close(sub.ch)
	}
	r.subscribers = nil
}
