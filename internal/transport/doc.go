// Package transport is the single choke point for outbound calls to the
// fleet API. It joins paths against the configured base URL, attaches JSON
// and bearer-token headers, translates non-2xx responses into *APIError,
// and applies the bounded retry policy. It deliberately enforces no
// timeout: cancellation belongs to the caller's context.
package transport
