package fleetadmin

import (
	"context"

	"github.com/fleetops/fleetadmin/internal/transport"
)

// WithRequestID pins the X-Request-ID header for every request issued
// under ctx, so a whole screen refresh can be correlated server-side.
// Without it each attempt carries a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return transport.WithRequestID(ctx, id)
}
