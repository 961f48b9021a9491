package querycache

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable wraps backend failures (Redis connectivity, encode
// problems). The in-memory store never returns it.
var ErrStoreUnavailable = errors.New("cache store unavailable")

// Entry is one cached read: the raw JSON payload returned by the
// transport and the time it was fetched. Staleness is judged by the cache,
// not the store.
type Entry struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store persists cache entries. Implementations must treat keys as opaque
// beyond the family-prefix contract used by DeleteFamily.
type Store interface {
	// Get returns the entry for key and whether one exists.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Set stores an entry. ttl bounds how long the backend keeps it;
	// ttl <= 0 means no backend expiry.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	// DeleteFamily removes every entry whose key belongs to family.
	DeleteFamily(ctx context.Context, family string) error
	// Clear removes all entries.
	Clear(ctx context.Context) error
}
