package fleetadmin

import (
	"errors"
	"time"
)

// Config groups every tunable of the client. Zero value is not usable;
// start from the defaults via [New] and override what you need.
type Config struct {
	API         APIConfig
	Cache       CacheConfig
	Retry       RetryConfig
	Credentials CredentialPolicy
	Events      EventsConfig
	Metrics     MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the fleet API.
type APIConfig struct {
	// BaseURL is the absolute URL all endpoint paths are resolved against,
	// e.g. "http://localhost:3000".
	BaseURL string
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig controls the query cache.
type CacheConfig struct {
	// StaleTTL is the staleness window for cached reads. Entries younger
	// than this are served without a network call.
	StaleTTL time.Duration
	// HealthStaleTTL is the staleness window for the /health family. The
	// health screen refreshes on a much shorter cadence than list views.
	HealthStaleTTL time.Duration
	// RedisPrefix namespaces cache keys when the Redis store is used.
	RedisPrefix string
}

/*
====================================
RETRY CONFIG
====================================
*/

// RetryConfig bounds automatic retries. Attempts count total tries, so 2
// means one retry. There is no backoff: the upstream API is assumed
// low-latency, and a failed attempt is retried immediately or not at all.
type RetryConfig struct {
	ReadAttempts     int
	MutationAttempts int
}

/*
====================================
CREDENTIAL POLICY
====================================
*/

// CredentialPolicy is the client-side validation applied to login and
// register input before any request is sent.
type CredentialPolicy struct {
	MinUsernameLength int
	MinPasswordLength int
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig controls the async client-event dispatcher.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking emitters when the buffer
	// is saturated. Dropped counts are visible to the metrics exporter.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
		},
		Cache: CacheConfig{
			StaleTTL:       5 * time.Minute,
			HealthStaleTTL: 30 * time.Second,
			RedisPrefix:    "fleetq",
		},
		Retry: RetryConfig{
			ReadAttempts:     2,
			MutationAttempts: 2,
		},
		Credentials: CredentialPolicy{
			MinUsernameLength: 3,
			MinPasswordLength: 6,
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config holds no reference types today; a value copy is a deep copy.
	return cfg
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL required")
	}
	if c.Cache.StaleTTL <= 0 {
		return errors.New("Cache StaleTTL must be positive")
	}
	if c.Cache.HealthStaleTTL <= 0 {
		return errors.New("Cache HealthStaleTTL must be positive")
	}
	if c.Retry.ReadAttempts < 1 {
		return errors.New("Retry ReadAttempts must be at least 1")
	}
	if c.Retry.MutationAttempts < 1 {
		return errors.New("Retry MutationAttempts must be at least 1")
	}
	if c.Credentials.MinUsernameLength < 1 {
		return errors.New("Credentials MinUsernameLength must be at least 1")
	}
	if c.Credentials.MinPasswordLength < 1 {
		return errors.New("Credentials MinPasswordLength must be at least 1")
	}
	if c.Events.Enabled && c.Events.BufferSize < 1 {
		return errors.New("Events BufferSize must be at least 1 when enabled")
	}
	return nil
}
