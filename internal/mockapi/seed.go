package mockapi

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	fleetadmin "github.com/fleetops/fleetadmin"
)

// seed loads a small demo fleet so the CLI and examples have data to
// show without a setup step. IDs are fixed so repeated runs are stable.
func (s *Server) seed() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	s.users["admin"] = &userRecord{
		user: fleetadmin.User{
			ID:       "seed-user-admin",
			Username: "admin",
			Role:     fleetadmin.RoleAdmin,
		},
		passwordHash: hash,
	}

	routes := []*fleetadmin.Route{
		{
			ID:              "seed-route-01",
			Name:            "Colombo - Kandy Express",
			RouteCode:       "R-001",
			StartLocation:   "Colombo",
			EndLocation:     "Kandy",
			DistanceKM:      115.5,
			DurationMinutes: 180,
			Status:          fleetadmin.RouteActive,
		},
		{
			ID:              "seed-route-02",
			Name:            "Colombo - Galle Coastal",
			RouteCode:       "R-002",
			StartLocation:   "Colombo",
			EndLocation:     "Galle",
			DistanceKM:      119.0,
			DurationMinutes: 150,
			Status:          fleetadmin.RouteActive,
		},
		{
			ID:              "seed-route-03",
			Name:            "Kandy - Anuradhapura",
			RouteCode:       "R-003",
			StartLocation:   "Kandy",
			EndLocation:     "Anuradhapura",
			DistanceKM:      138.0,
			DurationMinutes: 210,
			Status:          fleetadmin.RouteMaintenance,
		},
	}
	for _, r := range routes {
		r.CreatedAt = now
		r.UpdatedAt = now
		s.routes[r.ID] = r
	}

	lastService := today.AddDate(0, -1, 0)
	buses := []*fleetadmin.Bus{
		{
			ID:                 "seed-bus-01",
			BusNumber:          "CB-1001",
			RegistrationNumber: "WP NA-4521",
			RouteID:            "seed-route-01",
			Capacity:           54,
			Status:             fleetadmin.BusActive,
			GPSStatus:          "online",
			LastServiceDate:    &lastService,
		},
		{
			ID:                 "seed-bus-02",
			BusNumber:          "CB-1002",
			RegistrationNumber: "WP NB-7733",
			RouteID:            "seed-route-02",
			Capacity:           48,
			Status:             fleetadmin.BusActive,
			GPSStatus:          "online",
		},
		{
			ID:                 "seed-bus-03",
			BusNumber:          "AD-4007",
			RegistrationNumber: "NC PA-1190",
			RouteID:            "seed-route-03",
			Capacity:           60,
			Status:             fleetadmin.BusMaintenance,
			GPSStatus:          "offline",
		},
	}
	for _, b := range buses {
		b.CreatedAt = now
		b.UpdatedAt = now
		s.buses[b.ID] = b
	}

	trips := []*fleetadmin.Trip{
		{
			ID:                     "seed-trip-01",
			BusID:                  "seed-bus-01",
			RouteID:                "seed-route-01",
			DriverID:               "seed-driver-01",
			ScheduledDepartureTime: today.Add(6 * time.Hour),
			ScheduledArrivalTime:   today.Add(9 * time.Hour),
			Status:                 fleetadmin.TripArrived,
			PassengerCount:         51,
		},
		{
			ID:                     "seed-trip-02",
			BusID:                  "seed-bus-01",
			RouteID:                "seed-route-01",
			DriverID:               "seed-driver-01",
			ScheduledDepartureTime: today.Add(10 * time.Hour),
			ScheduledArrivalTime:   today.Add(13 * time.Hour),
			Status:                 fleetadmin.TripInTransit,
			DelayMinutes:           10,
			PassengerCount:         47,
		},
		{
			ID:                     "seed-trip-03",
			BusID:                  "seed-bus-02",
			RouteID:                "seed-route-02",
			DriverID:               "seed-driver-02",
			ScheduledDepartureTime: today.Add(14 * time.Hour),
			ScheduledArrivalTime:   today.Add(16*time.Hour + 30*time.Minute),
			Status:                 fleetadmin.TripScheduled,
		},
	}
	for _, t := range trips {
		t.CreatedAt = now
		t.UpdatedAt = now
		s.trips[t.ID] = t
	}
}
