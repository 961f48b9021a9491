package fleetadmin_test

import (
	. "github.com/fleetops/fleetadmin"

	"context"
	"errors"
	"testing"
	"time"
)

func TestListTripsByDate(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	loginAdmin(t, client)

	today := time.Now().UTC().Format("2006-01-02")
	list, err := client.ListTrips(ctx, TripQuery{Date: today})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 3 {
		t.Fatalf("expected the 3 seeded trips for today, got %d", list.Total)
	}

	empty, err := client.ListTrips(ctx, TripQuery{Date: "1999-01-01"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("expected no trips on an empty day, got %d", empty.Total)
	}
}

func TestListTripsByBus(t *testing.T) {
	client, _ := newTestClient(t)
	loginAdmin(t, client)

	list, err := client.ListTrips(context.Background(), TripQuery{BusID: "seed-bus-01"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("expected 2 trips for the bus, got %d", list.Total)
	}
	for _, trip := range list.Trips {
		if trip.BusID != "seed-bus-01" {
			t.Fatalf("filter leaked bus %q", trip.BusID)
		}
	}
}

func TestCreateTripDefaultsToScheduled(t *testing.T) {
	client, _ := newTestClient(t)
	loginAdmin(t, client)

	dep := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)
	created, err := client.CreateTrip(context.Background(), InsertTrip{
		BusID:                  "seed-bus-02",
		RouteID:                "seed-route-02",
		ScheduledDepartureTime: dep,
		ScheduledArrivalTime:   dep.Add(150 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != TripScheduled {
		t.Fatalf("status should default to scheduled, got %q", created.Status)
	}
	if !created.ScheduledDepartureTime.Equal(dep) {
		t.Fatalf("departure mangled: %v", created.ScheduledDepartureTime)
	}
}

func TestCancelTrip(t *testing.T) {
	client, _ := newTestClient(t)
	loginAdmin(t, client)

	trip, err := client.CancelTrip(context.Background(), "seed-trip-03")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if trip.Status != TripCancelled {
		t.Fatalf("status = %q, want cancelled", trip.Status)
	}
}

func TestUpdateTripDelay(t *testing.T) {
	client, _ := newTestClient(t)
	loginAdmin(t, client)

	delay := 25
	status := TripDelayed
	updated, err := client.UpdateTrip(context.Background(), "seed-trip-02", TripUpdate{
		DelayMinutes: &delay,
		Status:       &status,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DelayMinutes != 25 || updated.Status != TripDelayed {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestGetTripEmptyID(t *testing.T) {
	client, _ := newTestClient(t)
	loginAdmin(t, client)

	if _, err := client.GetTrip(context.Background(), ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}
