package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/event"
)

// recorder collects dispatched events behind a mutex.
type recorder struct {
	mu     sync.Mutex
	events []event.RosterEvent
}

func (r *recorder) HandleEvent(_ context.Context, evt event.RosterEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) snapshot() []event.RosterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.RosterEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func rosterEvent() event.RosterEvent {
	return event.NewStudentSignedUp(catalog.Activity{
		ID:              "chess",
		Name:            "Chess Club",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
	}, "michael@mergington.edu")
}

func TestBus_PublishDispatchesToSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New(8, nil)
	rec := &recorder{}
	bus.Subscribe("test", rec)
	bus.Start(ctx)

	bus.Publish(ctx, rosterEvent())

	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
	got := rec.snapshot()[0]
	if got.EventType != event.TypeStudentSignedUp {
		t.Errorf("event type = %q", got.EventType)
	}
	if got.ActivityName != "Chess Club" || got.Email != "michael@mergington.edu" {
		t.Errorf("event payload = %+v", got)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New(8, nil)
	rec := &recorder{}
	bus.Subscribe("test", rec)
	bus.Start(ctx)

	bus.Publish(ctx, rosterEvent())
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	bus.Unsubscribe("test")
	bus.Publish(ctx, rosterEvent())

	time.Sleep(50 * time.Millisecond)
	if got := len(rec.snapshot()); got != 1 {
		t.Errorf("events after unsubscribe = %d, want 1", got)
	}
}

func TestBus_HandlerFunc(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New(8, nil)
	var mu sync.Mutex
	var count int
	bus.Subscribe("fn", HandlerFunc(func(context.Context, event.RosterEvent) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))
	bus.Start(ctx)

	bus.Publish(ctx, rosterEvent())
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})
}

func TestBus_DrainsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	bus := New(16, nil)
	rec := &recorder{}
	bus.Subscribe("test", rec)

	// Buffer events before the consumer starts, then cancel immediately.
	for i := 0; i < 5; i++ {
		bus.Publish(ctx, rosterEvent())
	}
	bus.Start(ctx)
	cancel()
	bus.Wait()

	if got := len(rec.snapshot()); got != 5 {
		t.Errorf("drained events = %d, want 5", got)
	}
}

func TestBus_PublishNeverBlocksWhenFull(t *testing.T) {
	ctx := context.Background()

	// No consumer running; fill the buffer and publish once more.
	bus := New(1, nil)
	bus.Publish(ctx, rosterEvent())

	done := make(chan struct{})
	go func() {
		bus.Publish(ctx, rosterEvent())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on full buffer")
	}
}
