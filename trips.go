package fleetadmin

import (
	"context"
	"net/http"
	"net/url"
)

// ListTrips returns trips matching q through the query cache.
func (c *Client) ListTrips(ctx context.Context, q TripQuery) (*TripList, error) {
	var out TripList
	if err := c.cachedRead(ctx, "/trips", q.params(), c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrip returns a single trip by ID, cached under the /trips family.
func (c *Client) GetTrip(ctx context.Context, id string) (*Trip, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Trip
	if err := c.cachedRead(ctx, "/trips/"+url.PathEscape(id), nil, c.config.Cache.StaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTrip schedules a trip and invalidates the /trips cache family on
// success.
func (c *Client) CreateTrip(ctx context.Context, in InsertTrip) (*Trip, error) {
	var out Trip
	if err := c.mutate(ctx, http.MethodPost, "/trips", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTrip applies a partial update and invalidates the /trips cache
// family on success.
func (c *Client) UpdateTrip(ctx context.Context, id string, update TripUpdate) (*Trip, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out Trip
	if err := c.mutate(ctx, http.MethodPut, "/trips/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelTrip marks a scheduled or delayed trip cancelled. Convenience over
// UpdateTrip matching the cancel action on the trips screen.
func (c *Client) CancelTrip(ctx context.Context, id string) (*Trip, error) {
	status := TripCancelled
	return c.UpdateTrip(ctx, id, TripUpdate{Status: &status})
}

// DeleteTrip removes a trip and invalidates the /trips cache family on
// success.
func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.mutate(ctx, http.MethodDelete, "/trips/"+url.PathEscape(id), nil, nil)
}
