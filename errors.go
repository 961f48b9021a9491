package fleetadmin

import (
	"errors"

	"github.com/fleetops/fleetadmin/internal/querycache"
	"github.com/fleetops/fleetadmin/internal/transport"
)

var (
	// ErrUsernameTooShort is returned by Login and Register before any
	// network call when the username has fewer than the configured minimum
	// characters.
	ErrUsernameTooShort = errors.New("username too short")
	// ErrPasswordTooShort is returned by Login and Register before any
	// network call when the password has fewer than the configured minimum
	// characters.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrRoleInvalid is returned by Register when the requested role is not
	// one of admin, operator, or viewer.
	ErrRoleInvalid = errors.New("invalid role")
	// ErrMissingID is returned by Get/Update/Delete operations called with
	// an empty resource ID.
	ErrMissingID = errors.New("resource id required")
	// ErrCacheInvalidation marks a mutation that the API applied but whose
	// cache-family invalidation failed; cached lists may be stale until the
	// staleness window expires.
	ErrCacheInvalidation = errors.New("mutation applied but cache invalidation failed")

	// ErrTransport wraps network and decode failures that never produced a
	// usable HTTP response.
	ErrTransport = transport.ErrTransport
	// ErrCacheUnavailable wraps cache-store backend failures.
	ErrCacheUnavailable = querycache.ErrStoreUnavailable
)

// APIError is a non-2xx response from the fleet API. Its Error() string is
// the server's error message verbatim. Use errors.As to recover the status
// code.
type APIError = transport.APIError
