package fleetadmin

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoutes returns routes matching q. Reads are served through the query
// cache: structurally equal filter sets share one entry, and any route
// mutation invalidates every /routes entry.
func (c *Client) ListRoutes(ctx context.Context, q RouteQuery) (*RouteList, error) {
	var out RouteList
	if err := c.cachedRead(ctx, "/routes", q.params(), c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRoute returns a single route by ID, cached under the /routes family.
func (c *Client) GetRoute(ctx context.Context, id string) (*Route, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Route
	if err := c.cachedRead(ctx, "/routes/"+url.PathEscape(id), nil, c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoute creates a route and invalidates the /routes cache family on
// success.
func (c *Client) CreateRoute(ctx context.Context, in InsertRoute) (*Route, error) {
	var out Route
	if err := c.mutate(ctx, http.MethodPost, "/routes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRoute applies a partial update and invalidates the /routes cache
// family on success.
func (c *Client) UpdateRoute(ctx context.Context, id string, update RouteUpdate) (*Route, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Route
	if err := c.mutate(ctx, http.MethodPut, "/routes/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoute removes a route and invalidates the /routes cache family on
// success.
func (c *Client) DeleteRoute(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.mutate(ctx, http.MethodDelete, "/routes/"+url.PathEscape(id), nil, nil)
}
