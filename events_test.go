package fleetadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	var once sync.Once
	sink := sinkFunc(func(context.Context, ClientEvent) {
		<-block
	})
	defer once.Do(func() { close(block) })

	d := newEventDispatcher(EventsConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)

	// First event occupies the sink, second fills the buffer, the rest drop.
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), ClientEvent{EventType: EventLogout})
	}

	waitFor(t, func() bool { return d.Dropped() >= 3 })
	once.Do(func() { close(block) })
	d.Close()
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	var mu sync.Mutex
	var delivered int
	sink := sinkFunc(func(context.Context, ClientEvent) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	d := newEventDispatcher(EventsConfig{
		Enabled:    true,
		BufferSize: 64,
		DropIfFull: false,
	}, sink)

	const events = 40
	for i := 0; i < events; i++ {
		d.Emit(context.Background(), ClientEvent{EventType: EventLogout})
	}
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if delivered != events {
		t.Fatalf("expected %d delivered after close, got %d", events, delivered)
	}
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := newEventDispatcher(EventsConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}
	// Nil receivers are safe.
	d.Emit(context.Background(), ClientEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reports 0 dropped")
	}
}

func TestJSONWriterSinkOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), ClientEvent{EventType: EventLogin, Username: "admin", Success: true})
	sink.Emit(context.Background(), ClientEvent{EventType: EventLogout, Username: "admin", Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var event ClientEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if event.EventType != EventLogin {
		t.Fatalf("EventType = %q", event.EventType)
	}
}

type sinkFunc func(ctx context.Context, event ClientEvent)

func (f sinkFunc) Emit(ctx context.Context, event ClientEvent) { f(ctx, event) }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
