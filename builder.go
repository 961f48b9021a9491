package fleetadmin

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetops/fleetadmin/internal/querycache"
	"github.com/fleetops/fleetadmin/internal/transport"
)

// Builder assembles a [Client]. Configure it during initialization; Build
// is single-use.
type Builder struct {
	config     Config
	httpClient transport.Doer
	redis      redis.UniversalClient
	eventSink  EventSink

	built bool
}

// New returns a Builder loaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL overrides the API base URL.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithStaleTTL overrides the staleness window for cached list and detail
// reads. The /health window is unaffected.
func (b *Builder) WithStaleTTL(ttl time.Duration) *Builder {
	b.config.Cache.StaleTTL = ttl
	return b
}

// WithHTTPClient supplies the HTTP client used for every request. Defaults
// to http.DefaultClient, which carries no timeout; a hung call hangs the
// affected operation until its context is cancelled.
func (b *Builder) WithHTTPClient(client transport.Doer) *Builder {
	b.httpClient = client
	return b
}

// WithRedis switches the query cache to the Redis store so co-located
// shells share fetched pages. Without it the cache is in-process.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithEventSink enables event dispatch to sink.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	b.config.Events.Enabled = sink != nil
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles the Client.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		config:  cfg,
		session: newSessionState(),
		metrics: NewMetrics(cfg.Metrics),
	}
	client.events = newEventDispatcher(cfg.Events, b.eventSink)

	var store querycache.Store
	if b.redis != nil {
		store = querycache.NewRedisStore(b.redis, cfg.Cache.RedisPrefix)
	} else {
		store = querycache.NewMemoryStore()
	}
	client.cache = querycache.New(store, querycache.Hooks{
		OnHit:  func(string) { client.metrics.Inc(MetricCacheHit) },
		OnMiss: func(string) { client.metrics.Inc(MetricCacheMiss) },
		OnInvalidate: func(family string) {
			client.metrics.Inc(MetricCacheInvalidation)
			client.emitEvent(context.Background(), ClientEvent{
				EventType: EventCacheInvalidation,
				Endpoint:  family,
				Success:   true,
			})
		},
		OnStoreError: func(op string, err error) {
			client.metrics.Inc(MetricCacheStoreError)
			client.emitEvent(context.Background(), ClientEvent{
				EventType: EventCacheStoreError,
				Error:     err.Error(),
				Metadata:  map[string]string{"op": op},
			})
		},
	})

	tr, err := transport.New(cfg.API.BaseURL, b.httpClient, client.session.token, transport.Hooks{
		OnRetry: func(string, string) { client.metrics.Inc(MetricRequestRetry) },
		OnFailure: func(method, path string, err error) {
			client.metrics.Inc(MetricRequestFailure)
			client.emitEvent(context.Background(), ClientEvent{
				EventType: EventRequestFailure,
				Method:    method,
				Endpoint:  path,
				Error:     err.Error(),
			})
		},
	})
	if err != nil {
		client.events.Close()
		return nil, err
	}
	client.transport = tr

	b.built = true

	return client, nil
}
