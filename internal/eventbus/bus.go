// Package eventbus provides an in-process pub/sub bus for roster events.
// Publishers never block; subscribers run on a single consumer goroutine,
// which serialises event handling.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mergington/activities/internal/event"
)

// Handler processes a roster event. Implementations must be safe for calls
// from the bus goroutine while subscriptions come and go.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.RosterEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt event.RosterEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt event.RosterEvent) error {
	return f(ctx, evt)
}

// Bus is a buffered in-process event bus. Subscribers may be added and
// removed at runtime, so live-feed connections can join and leave freely.
type Bus struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]Handler

	events chan event.RosterEvent
	done   chan struct{}
}

// New creates a Bus with the given channel buffer size.
func New(bufSize int, logger *slog.Logger) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger:      logger,
		subscribers: make(map[string]Handler),
		events:      make(chan event.RosterEvent, bufSize),
		done:        make(chan struct{}),
	}
}

// Subscribe registers a named handler. Re-subscribing a name replaces the
// previous handler.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[name] = h
}

// Unsubscribe removes a named handler. Unknown names are a no-op.
func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, name)
}

// Publish sends an event to the bus. Non-blocking: if the buffer is full the
// event is dropped with a warning.
func (b *Bus) Publish(ctx context.Context, evt event.RosterEvent) {
	select {
	case b.events <- evt:
	default:
		b.logger.Warn("eventbus buffer full, dropping event",
			"event_type", evt.EventType, "event_id", evt.ID)
	}
}

// Start begins the consumer goroutine. It runs until the context is
// cancelled, draining buffered events before exiting.
func (b *Bus) Start(ctx context.Context) {
	go func() {
		defer close(b.done)
		for {
			select {
			case evt := <-b.events:
				b.dispatch(ctx, evt)
			case <-ctx.Done():
				for {
					select {
					case evt := <-b.events:
						b.dispatch(ctx, evt)
					default:
						return
					}
				}
			}
		}
	}()
}

// Wait blocks until the consumer goroutine has finished.
func (b *Bus) Wait() {
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, evt event.RosterEvent) {
	b.mu.RLock()
	subs := make(map[string]Handler, len(b.subscribers))
	for name, h := range b.subscribers {
		subs[name] = h
	}
	b.mu.RUnlock()

	for name, h := range subs {
		if err := h.HandleEvent(ctx, evt); err != nil {
			b.logger.Error("eventbus handler failed",
				"subscriber", name, "event_type", evt.EventType, "error", err)
		}
	}
}
