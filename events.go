package fleetadmin

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event type names emitted by the client.
const (
	EventLogin             = "auth.login"
	EventRegister          = "auth.register"
	EventLogout            = "auth.logout"
	EventRequestFailure    = "request.failure"
	EventCacheInvalidation = "cache.invalidation"
	EventCacheStoreError   = "cache.store_error"
)

// ClientEvent is one observation of client behavior: an auth outcome, a
// request failure, a cache invalidation. Events are delivered to the
// configured [EventSink] off the caller's hot path.
type ClientEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Username  string            `json:"username,omitempty"`
	Method    string            `json:"method,omitempty"`
	Endpoint  string            `json:"endpoint,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventSink receives client events. Implementations must be safe for
// concurrent use; Emit is called from the dispatcher goroutine.
type EventSink interface {
	Emit(ctx context.Context, event ClientEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, ClientEvent) {}

// ChannelSink forwards events to a buffered channel, for tests and for
// callers that want to fan events into their own pipeline.
type ChannelSink struct {
	events chan ClientEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan ClientEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event ClientEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan ClientEvent {
	return s.events
}

// JSONWriterSink writes one JSON line per event, suitable for piping the
// CLI's event stream to a file.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event ClientEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
