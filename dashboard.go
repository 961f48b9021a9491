package fleetadmin

import (
	"context"
	"time"
)

// dashboardPageSize matches the dashboard's first-page reads; the roll-up
// is a snapshot, not a full scan.
const dashboardPageSize = 100

// DashboardMetrics computes the dashboard roll-up from the cached list
// reads plus the health report: active routes, fleet utilization, and
// today's trip progress. Each underlying read goes through the query
// cache, so a dashboard refresh inside the staleness window costs no
// network calls.
//
// A health fetch failure degrades SystemHealth to "unknown" instead of
// failing the roll-up; route/bus/trip read failures are returned.
func (c *Client) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	routes, err := c.ListRoutes(ctx, RouteQuery{Limit: dashboardPageSize})
	if err != nil {
		return nil, err
	}
	buses, err := c.ListBuses(ctx, BusQuery{Limit: dashboardPageSize})
	if err != nil {
		return nil, err
	}
	trips, err := c.ListTrips(ctx, TripQuery{
		Date:  time.Now().UTC().Format("2006-01-02"),
		Limit: dashboardPageSize,
	})
	if err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		TotalBuses:   len(buses.Buses),
		TodaysTrips:  trips.Total,
		SystemHealth: "unknown",
	}
	for _, route := range routes.Routes {
		if route.Status == RouteActive {
			metrics.ActiveRoutes++
		}
	}
	for _, bus := range buses.Buses {
		if bus.Status == BusActive {
			metrics.ActiveBuses++
		}
	}
	for _, trip := range trips.Trips {
		if trip.Status == TripArrived {
			metrics.CompletedTrips++
		}
	}

	if health, err := c.Health(ctx); err == nil {
		metrics.SystemHealth = health.Status
	}

	return metrics, nil
}
