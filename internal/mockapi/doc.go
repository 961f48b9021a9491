// Package mockapi is a development stand-in for the fleet API: the full
// HTTP surface the SDK consumes, backed by in-memory stores. It exists so
// the CLI can be exercised without a backend deployment and so integration
// tests can run against a real HTTP server. It is not a production server
// and keeps no state across restarts.
package mockapi
