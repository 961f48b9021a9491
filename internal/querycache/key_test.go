package querycache

import "testing"

func TestKeyParamOrderDeterministic(t *testing.T) {
	a := Key("/trips", map[string]string{"date": "2026-08-28", "status": "scheduled", "busId": "b1"})
	b := Key("/trips", map[string]string{"status": "scheduled", "busId": "b1", "date": "2026-08-28"})

	if a != b {
		t.Fatalf("same params produced different keys: %q vs %q", a, b)
	}
	if a != "/trips?busId=b1&date=2026-08-28&status=scheduled" {
		t.Fatalf("unexpected key: %q", a)
	}
}

func TestKeyEmptyValuesDropped(t *testing.T) {
	bare := Key("/buses", nil)
	empties := Key("/buses", map[string]string{"status": "", "route": ""})

	if bare != empties {
		t.Fatalf("empty filter values should not change the key: %q vs %q", bare, empties)
	}
	if bare != "/buses" {
		t.Fatalf("unexpected key: %q", bare)
	}
}

func TestKeyNormalizesPath(t *testing.T) {
	if got := Key("routes/", nil); got != "/routes" {
		t.Fatalf("expected /routes, got %q", got)
	}
}

func TestFamilyFirstSegment(t *testing.T) {
	cases := map[string]string{
		"/buses":                 "/buses",
		"/buses?status=active":   "/buses",
		"/buses/abc-123":         "/buses",
		"/trips?date=2026-08-28": "/trips",
		"/health":                "/health",
		"/routes/xyz?limit=10":   "/routes",
	}
	for key, want := range cases {
		if got := Family(key); got != want {
			t.Fatalf("Family(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestKeyInFamilyBoundary(t *testing.T) {
	if keyInFamily("/busesX", "/buses") {
		t.Fatal("/busesX must not match the /buses family")
	}
	if !keyInFamily("/buses", "/buses") {
		t.Fatal("/buses must match its own family")
	}
	if !keyInFamily("/buses?status=active", "/buses") {
		t.Fatal("filtered list key must match")
	}
	if !keyInFamily("/buses/abc", "/buses") {
		t.Fatal("detail key must match")
	}
}
