package querycache

import (
	"context"
	"sync"
	"time"
)

// FetchFunc performs the network read for a key when no fresh entry is
// available.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Hooks receives cache-level observations. All fields are optional.
type Hooks struct {
	OnHit        func(key string)
	OnMiss       func(key string)
	OnInvalidate func(family string)
	OnStoreError func(op string, err error)
}

// Cache coordinates keyed reads over a Store: fresh entries are served
// without network, concurrent reads of one key share a single in-flight
// fetch, and mutations invalidate whole families.
type Cache struct {
	store Store
	hooks Hooks

	mu       sync.Mutex
	inflight map[string]*call
}

type call struct {
	done    chan struct{}
	payload []byte
	err     error
}

// New wraps store. A nil store panics at first use; callers construct the
// store in Builder.Build.
func New(store Store, hooks Hooks) *Cache {
	return &Cache{
		store:    store,
		hooks:    hooks,
		inflight: make(map[string]*call),
	}
}

// Do returns the payload for key, fetching it at most once no matter how
// many goroutines ask concurrently. The boolean reports whether the
// payload was served from cache. Entries younger than staleTTL are fresh;
// stale or missing entries trigger a fetch whose result replaces the
// entry. Fetch errors are returned to every waiter and never cached.
//
// Store failures degrade to a plain network read: they are reported
// through OnStoreError and the caller still gets live data.
func (c *Cache) Do(ctx context.Context, key string, staleTTL time.Duration, fetch FetchFunc) ([]byte, bool, error) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.storeError("get", err)
	} else if ok && time.Since(entry.FetchedAt) < staleTTL {
		if c.hooks.OnHit != nil {
			c.hooks.OnHit(key)
		}
		return entry.Payload, true, nil
	}

	if c.hooks.OnMiss != nil {
		c.hooks.OnMiss(key)
	}

	c.mu.Lock()
	if existing, found := c.inflight[key]; found {
		c.mu.Unlock()
		select {
		case <-existing.done:
			return existing.payload, false, existing.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	current := &call{done: make(chan struct{})}
	c.inflight[key] = current
	c.mu.Unlock()

	current.payload, current.err = fetch(ctx)

	if current.err == nil {
		set := Entry{Payload: current.payload, FetchedAt: time.Now()}
		if err := c.store.Set(ctx, key, set, staleTTL); err != nil {
			c.storeError("set", err)
		}
	}

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(current.done)

	return current.payload, false, current.err
}

// Invalidate drops every entry in family. Entries in other families are
// untouched.
func (c *Cache) Invalidate(ctx context.Context, family string) error {
	if c.hooks.OnInvalidate != nil {
		c.hooks.OnInvalidate(family)
	}
	if err := c.store.DeleteFamily(ctx, family); err != nil {
		c.storeError("delete_family", err)
		return err
	}
	return nil
}

// Clear drops everything. Used on login and logout so no cached read ever
// crosses identities.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		c.storeError("clear", err)
		return err
	}
	return nil
}

func (c *Cache) storeError(op string, err error) {
	if c.hooks.OnStoreError != nil {
		c.hooks.OnStoreError(op, err)
	}
}
