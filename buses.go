package fleetadmin

import (
	"context"
	"net/http"
	"net/url"
)

// ListBuses returns fleet vehicles matching q through the query cache.
func (c *Client) ListBuses(ctx context.Context, q BusQuery) (*BusList, error) {
	var out BusList
	if err := c.cachedRead(ctx, "/buses", q.params(), c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBus returns a single bus by ID, cached under the /buses family.
func (c *Client) GetBus(ctx context.Context, id string) (*Bus, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Bus
	if err := c.cachedRead(ctx, "/buses/"+url.PathEscape(id), nil, c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBus registers a bus and invalidates the /buses cache family on
// success.
func (c *Client) CreateBus(ctx context.Context, in InsertBus) (*Bus, error) {
	var out Bus
	if err := c.mutate(ctx, http.MethodPost, "/buses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBus applies a partial update and invalidates the /buses cache
// family on success.
func (c *Client) UpdateBus(ctx context.Context, id string, update BusUpdate) (*Bus, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Bus
	if err := c.mutate(ctx, http.MethodPut, "/buses/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBus removes a bus and invalidates the /buses cache family on
// success.
func (c *Client) DeleteBus(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.mutate(ctx, http.MethodDelete, "/buses/"+url.PathEscape(id), nil, nil)
}
