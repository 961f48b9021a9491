package fleetadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fleetops/fleetadmin/internal/querycache"
	"github.com/fleetops/fleetadmin/internal/transport"
)

// Client is the fleet-admin API client: one Session, one query cache, one
// transport. Construct it through [Builder.Build]; the zero value is not
// usable. All methods are safe for concurrent use.
type Client struct {
	config    Config
	session   *sessionState
	cache     *querycache.Cache
	transport *transport.Transport
	metrics   *Metrics
	events    *eventDispatcher
}

// MetricsSnapshot copies the client's counters. This is the source surface
// consumed by metrics/export exporters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// EventsDropped reports events dropped by the dispatcher under
// backpressure.
func (c *Client) EventsDropped() uint64 {
	return c.events.Dropped()
}

// Close drains and stops the event dispatcher. The client must not be used
// afterwards.
func (c *Client) Close() {
	c.events.Close()
}

// cachedRead serves a keyed GET through the query cache and decodes the
// payload into out.
func (c *Client) cachedRead(ctx context.Context, path string, params map[string]string, staleTTL time.Duration, out any) error {
	key := querycache.Key(path, params)
	payload, _, err := c.cache.Do(ctx, key, staleTTL, func(ctx context.Context) ([]byte, error) {
		start := time.Now()
		raw, err := c.transport.GetRaw(ctx, path, queryValues(params), c.config.Retry.ReadAttempts)
		c.metrics.Observe(MetricRequestLatency, time.Since(start))
		return raw, err
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode %s payload: %v", ErrTransport, path, err)
	}
	return nil
}

// mutate issues a write and, on success, invalidates the resource family
// it touched so the next read observes the effect. family is derived from
// path: every `/buses` variant is one family.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	err := c.transport.Do(ctx, method, path, body, out, c.config.Retry.MutationAttempts)
	c.metrics.Observe(MetricRequestLatency, time.Since(start))
	if err != nil {
		return err
	}
	c.metrics.Inc(MetricMutationSuccess)

	family := querycache.Family(path)
	if err := c.cache.Invalidate(ctx, family); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheInvalidation, err)
	}
	return nil
}

func (c *Client) emitEvent(ctx context.Context, event ClientEvent) {
	event.Timestamp = time.Now()
	c.events.Emit(ctx, event)
}
