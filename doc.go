// Package fleetadmin is the client SDK for the bus-fleet tracking API. It
// owns the authenticated session, a keyed query cache with family
// invalidation, and typed clients for the routes, buses, trips, and health
// resources.
//
// Clients are constructed through [Builder.Build] and are safe for
// concurrent use after construction. All session mutation is serialized
// internally; callers observe the session through [Client.State] and
// [Client.Subscribe].
//
// # Architecture boundaries
//
// fleetadmin is the public surface. It exposes [Client], [Builder],
// [Config], sentinel errors, and value types (User, Route, Bus, Trip,
// SystemHealth, MetricsSnapshot). Request construction, cache coordination,
// and the development mock API live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Persist tokens or sessions across process restarts. Every run starts
//     unauthenticated.
//   - Retry beyond the configured bounded attempts, or add backoff.
//   - Enforce request timeouts. Cancellation is the caller's context.
package fleetadmin
