package fleetadmin

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionSnapshotIsolation(t *testing.T) {
	state := newSessionState()
	state.setAuthenticated(User{ID: "u1", Username: "admin", Role: RoleAdmin}, "tok")

	snap := state.State()
	snap.User.Username = "tampered"

	if got := state.State().User.Username; got != "admin" {
		t.Fatalf("mutating a snapshot leaked into the session: %q", got)
	}
}

func TestSessionUserAndTokenChangeTogether(t *testing.T) {
	state := newSessionState()

	empty := state.State()
	if empty.IsAuthenticated || empty.User != nil || empty.Token != "" {
		t.Fatalf("fresh session must be empty: %+v", empty)
	}

	state.setAuthenticated(User{Username: "admin"}, "tok")
	authed := state.State()
	if !authed.IsAuthenticated || authed.User == nil || authed.Token == "" {
		t.Fatalf("authenticated session torn: %+v", authed)
	}

	state.clear()
	cleared := state.State()
	if cleared.IsAuthenticated || cleared.User != nil || cleared.Token != "" {
		t.Fatalf("cleared session torn: %+v", cleared)
	}
}

func TestTokenExpiryParsesJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if got := tokenExpiry(token); !got.Equal(exp) {
		t.Fatalf("tokenExpiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiryOpaqueTokenIsZero(t *testing.T) {
	if got := tokenExpiry("not-a-jwt"); !got.IsZero() {
		t.Fatalf("opaque token should give zero expiry, got %v", got)
	}
	if got := tokenExpiry(""); !got.IsZero() {
		t.Fatalf("empty token should give zero expiry, got %v", got)
	}
}
