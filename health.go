package fleetadmin

import "context"

// Health returns the API's health report. The endpoint tolerates missing
// auth, so it works before login. Cached under its own family with the
// short health staleness window: the health screen refreshes every 30
// seconds rather than every 5 minutes.
func (c *Client) Health(ctx context.Context) (*SystemHealth, error) {
	var out SystemHealth
	if err := c.cachedRead(ctx, "/health", nil, c.config.Cache.HealthStaleTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
