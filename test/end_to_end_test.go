package test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	fleetadmin "github.com/fleetops/fleetadmin"
	"github.com/fleetops/fleetadmin/internal/mockapi"
)

func newStack(t *testing.T, opts ...func(*fleetadmin.Builder)) *fleetadmin.Client {
	t.Helper()

	srv := httptest.NewServer(mockapi.New(mockapi.Config{Seed: true}))
	t.Cleanup(srv.Close)

	builder := fleetadmin.New().WithBaseURL(srv.URL).WithHTTPClient(srv.Client())
	for _, opt := range opts {
		opt(builder)
	}
	client, err := builder.Build()
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client
}

func TestLoginListMutateRelist(t *testing.T) {
	client := newStack(t)
	ctx := context.Background()

	if _, err := client.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	before, err := client.ListBuses(ctx, fleetadmin.BusQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	created, err := client.CreateBus(ctx, fleetadmin.InsertBus{
		BusNumber:          "MT-9001",
		RegistrationNumber: "CP KA-8812",
		Capacity:           44,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	after, err := client.ListBuses(ctx, fleetadmin.BusQuery{})
	if err != nil {
		t.Fatalf("relist failed: %v", err)
	}
	if after.Total != before.Total+1 {
		t.Fatalf("mutation not observed: before=%d after=%d", before.Total, after.Total)
	}

	found := false
	for _, bus := range after.Buses {
		if bus.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created bus missing from the relist")
	}
}

func TestRedisBackedCacheSharedAcrossClients(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { _ = rdb.Close() })

	srv := httptest.NewServer(mockapi.New(mockapi.Config{Seed: true}))
	t.Cleanup(srv.Close)

	newRedisClient := func() *fleetadmin.Client {
		client, err := fleetadmin.New().
			WithBaseURL(srv.URL).
			WithHTTPClient(srv.Client()).
			WithRedis(rdb).
			Build()
		if err != nil {
			t.Fatalf("client construction failed: %v", err)
		}
		t.Cleanup(client.Close)
		return client
	}

	ctx := context.Background()

	first := newRedisClient()
	if _, err := first.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := first.ListRoutes(ctx, fleetadmin.RouteQuery{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// A second client over the same Redis is served the warmed entry
	// without touching the network. Login is skipped on purpose: a fresh
	// login clears the shared cache for the new identity.
	second := newRedisClient()
	if _, err := second.ListRoutes(ctx, fleetadmin.RouteQuery{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	snap := second.MetricsSnapshot()
	if snap.Counters[fleetadmin.MetricCacheHit] != 1 {
		t.Fatalf("expected the shared entry to hit, got %d hits", snap.Counters[fleetadmin.MetricCacheHit])
	}
}

func TestRedisOutageDegradesToNetwork(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { _ = rdb.Close() })

	client := newStack(t, func(b *fleetadmin.Builder) {
		b.WithRedis(rdb)
	})
	ctx := context.Background()

	if _, err := client.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	mr.Close()

	// Reads still work; the store failure is absorbed.
	list, err := client.ListRoutes(ctx, fleetadmin.RouteQuery{})
	if err != nil {
		t.Fatalf("read must survive a cache outage: %v", err)
	}
	if list.Total == 0 {
		t.Fatal("expected seeded routes")
	}

	snap := client.MetricsSnapshot()
	if snap.Counters[fleetadmin.MetricCacheStoreError] == 0 {
		t.Fatal("store errors must be counted")
	}
}
