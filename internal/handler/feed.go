package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/mergington/activities/internal/event"
	"github.com/mergington/activities/internal/eventbus"
)

// feedBuffer is the per-connection event buffer; slow clients lose events
// rather than stalling the bus.
const feedBuffer = 16

// FeedHandler streams roster events to WebSocket clients. Each connection
// subscribes to the bus for its lifetime.
type FeedHandler struct {
	bus    *eventbus.Bus
	logger *slog.Logger
}

// NewFeedHandler creates a FeedHandler on the given bus.
func NewFeedHandler(bus *eventbus.Bus, logger *slog.Logger) *FeedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedHandler{bus: bus, logger: logger}
}

// ServeHTTP upgrades to WebSocket and forwards roster events until the
// client disconnects.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("feed: websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// No client messages are expected; CloseRead gives us a context that is
	// cancelled when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	events := make(chan event.RosterEvent, feedBuffer)
	name := "feed-" + uuid.NewString()
	h.bus.Subscribe(name, eventbus.HandlerFunc(func(_ context.Context, evt event.RosterEvent) error {
		select {
		case events <- evt:
		default:
		}
		return nil
	}))
	defer h.bus.Unsubscribe(name)

	h.logger.Debug("feed: client connected", "subscriber", name)
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("feed: client disconnected", "subscriber", name)
			return
		case evt := <-events:
			if err := wsjson.Write(ctx, conn, evt); err != nil {
				h.logger.Debug("feed: write failed", "subscriber", name, "error", err)
				return
			}
		}
	}
}
