package test

import (
	"testing"

	fleetadmin "github.com/fleetops/fleetadmin"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = fleetadmin.New

	var _ *fleetadmin.Builder
	var _ *fleetadmin.Client
	var _ fleetadmin.Config
	var _ fleetadmin.Session
	var _ fleetadmin.AuthResult
	var _ fleetadmin.Route
	var _ fleetadmin.Bus
	var _ fleetadmin.Trip
	var _ fleetadmin.RouteQuery
	var _ fleetadmin.BusQuery
	var _ fleetadmin.TripQuery
	var _ fleetadmin.SystemHealth
	var _ fleetadmin.DashboardMetrics
	var _ fleetadmin.EventSink = fleetadmin.NoOpSink{}
	var _ fleetadmin.MetricsSnapshot

	var _ error = fleetadmin.ErrUsernameTooShort
	var _ error = fleetadmin.ErrPasswordTooShort
	var _ error = fleetadmin.ErrRoleInvalid
	var _ error = fleetadmin.ErrMissingID
	var _ error = fleetadmin.ErrTransport
	var _ error = fleetadmin.ErrCacheUnavailable
	var _ error = fleetadmin.ErrCacheInvalidation
	var _ error = (*fleetadmin.APIError)(nil)
}
