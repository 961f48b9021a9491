package fleetadmin_test

import (
	"context"
	"testing"

	. "github.com/fleetops/fleetadmin"
)

func TestSubscribeObservesMutationOrder(t *testing.T) {
	client, _ := newTestClient(t)

	var seen []Session
	cancel := client.Subscribe(func(s Session) {
		seen = append(seen, s)
	})
	defer cancel()

	loginAdmin(t, client)

	// Login produces two notifications: loading, then authenticated.
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].IsLoading || seen[0].IsAuthenticated {
		t.Fatalf("first notification should be the loading state: %+v", seen[0])
	}
	if seen[1].IsLoading || !seen[1].IsAuthenticated {
		t.Fatalf("second notification should be the authenticated state: %+v", seen[1])
	}

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected a logout notification, got %d total", len(seen))
	}
	if seen[2].IsAuthenticated {
		t.Fatal("logout notification must be unauthenticated")
	}
}

func TestSubscribeCancelStopsNotifications(t *testing.T) {
	client, _ := newTestClient(t)

	var count int
	cancel := client.Subscribe(func(Session) { count++ })
	cancel()

	loginAdmin(t, client)
	if count != 0 {
		t.Fatalf("cancelled subscriber received %d notifications", count)
	}
}
