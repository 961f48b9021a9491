package querycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "fleetq"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	fetchedAt := time.Now().Truncate(time.Second)
	if err := store.Set(ctx, "/routes", Entry{Payload: []byte(`{"total":3}`), FetchedAt: fetchedAt}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	entry, ok, err := store.Get(ctx, "/routes")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if string(entry.Payload) != `{"total":3}` {
		t.Fatalf("unexpected payload: %s", entry.Payload)
	}
	if !entry.FetchedAt.Equal(fetchedAt) {
		t.Fatalf("FetchedAt mangled: got %v want %v", entry.FetchedAt, fetchedAt)
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := newRedisStore(t)

	_, ok, err := store.Get(context.Background(), "/nothing")
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestRedisStoreCorruptBlobIsMiss(t *testing.T) {
	store, mr := newRedisStore(t)

	mr.Set("fleetq:/routes", "not json")

	_, ok, err := store.Get(context.Background(), "/routes")
	if err != nil {
		t.Fatalf("corrupt blob must degrade to a miss, got error: %v", err)
	}
	if ok {
		t.Fatal("corrupt blob must not be a hit")
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "/health", Entry{Payload: []byte("h"), FetchedAt: time.Now()}, 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(time.Minute)

	if _, ok, _ := store.Get(ctx, "/health"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisStoreDeleteFamilyRespectsBoundary(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	seed := []string{"/buses", "/buses?status=active", "/buses/abc", "/routes"}
	for _, key := range seed {
		if err := store.Set(ctx, key, Entry{Payload: []byte("x"), FetchedAt: time.Now()}, 0); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	if err := store.DeleteFamily(ctx, "/buses"); err != nil {
		t.Fatalf("delete family failed: %v", err)
	}

	for _, key := range []string{"/buses", "/buses?status=active", "/buses/abc"} {
		if _, ok, _ := store.Get(ctx, key); ok {
			t.Fatalf("%s should have been deleted", key)
		}
	}
	if _, ok, _ := store.Get(ctx, "/routes"); !ok {
		t.Fatal("/routes must survive a /buses family delete")
	}
}

func TestRedisStoreClear(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	store.Set(ctx, "/routes", Entry{Payload: []byte("r"), FetchedAt: time.Now()}, 0)
	store.Set(ctx, "/buses", Entry{Payload: []byte("b"), FetchedAt: time.Now()}, 0)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "/routes"); ok {
		t.Fatal("clear must drop /routes")
	}
	if _, ok, _ := store.Get(ctx, "/buses"); ok {
		t.Fatal("clear must drop /buses")
	}
}

func TestRedisStoreUnavailableSurfacesSentinel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	store := NewRedisStore(client, "fleetq")
	mr.Close()
	_ = client.Close()

	_, _, err := store.Get(context.Background(), "/routes")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
