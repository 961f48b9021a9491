package fleetadmin

import (
	"net/url"
	"strconv"
	"time"
)

// Role is the authorization tier of a fleet-admin user.
type Role string

const (
	// RoleAdmin may manage every resource.
	RoleAdmin Role = "admin"
	// RoleOperator may manage day-to-day fleet operations.
	RoleOperator Role = "operator"
	// RoleViewer has read-only access.
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// User is the authenticated identity returned by the auth endpoints.
// Immutable once fetched; replaced wholesale on re-login.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RouteStatus enumerates route lifecycle states.
type RouteStatus string

const (
	RouteActive      RouteStatus = "active"
	RouteInactive    RouteStatus = "inactive"
	RouteMaintenance RouteStatus = "maintenance"
)

// Route is a service corridor between two locations.
type Route struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	RouteCode       string      `json:"routeCode"`
	StartLocation   string      `json:"startLocation"`
	EndLocation     string      `json:"endLocation"`
	DistanceKM      float64     `json:"distance"`
	DurationMinutes int         `json:"duration"`
	Status          RouteStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// BusStatus enumerates fleet vehicle states.
type BusStatus string

const (
	BusActive       BusStatus = "active"
	BusMaintenance  BusStatus = "maintenance"
	BusOutOfService BusStatus = "out_of_service"
)

// Bus is a fleet vehicle, optionally assigned to a route.
type Bus struct {
	ID                 string     `json:"id"`
	BusNumber          string     `json:"busNumber"`
	RegistrationNumber string     `json:"registrationNumber"`
	RouteID            string     `json:"routeId,omitempty"`
	Capacity           int        `json:"capacity"`
	Status             BusStatus  `json:"status"`
	GPSStatus          string     `json:"gpsStatus,omitempty"`
	LastServiceDate    *time.Time `json:"lastServiceDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TripStatus enumerates the stages of a scheduled trip.
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripDeparted  TripStatus = "departed"
	TripInTransit TripStatus = "in_transit"
	TripArrived   TripStatus = "arrived"
	TripDelayed   TripStatus = "delayed"
	TripCancelled TripStatus = "cancelled"
)

// Trip is one scheduled run of a bus along a route.
type Trip struct {
	ID                     string     `json:"id"`
	BusID                  string     `json:"busId"`
	RouteID                string     `json:"routeId"`
	DriverID               string     `json:"driverId,omitempty"`
	ScheduledDepartureTime time.Time  `json:"scheduledDepartureTime"`
	ScheduledArrivalTime   time.Time  `json:"scheduledArrivalTime"`
	DelayMinutes           int        `json:"delayMinutes,omitempty"`
	PassengerCount         int        `json:"passengerCount,omitempty"`
	Status                 TripStatus `json:"status"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// RouteList is the /routes list response.
type RouteList struct {
	Routes []Route `json:"routes"`
	Total  int     `json:"total"`
}

// BusList is the /buses list response.
type BusList struct {
	Buses []Bus `json:"buses"`
	Total int   `json:"total"`
}

// TripList is the /trips list response.
type TripList struct {
	Trips []Trip `json:"trips"`
	Total int    `json:"total"`
}

// RouteQuery filters the /routes list. Zero values are unset and excluded
// from both the request and the cache key.
type RouteQuery struct {
	Status RouteStatus
	Sort   string
	Limit  int
	Offset int
}

func (q RouteQuery) params() map[string]string {
	p := map[string]string{
		"status": string(q.Status),
		"sort":   q.Sort,
	}
	addIntParam(p, "limit", q.Limit)
	addIntParam(p, "offset", q.Offset)
	return p
}

// BusQuery filters the /buses list.
type BusQuery struct {
	Route  string
	Status BusStatus
	Sort   string
	Limit  int
	Offset int
}

func (q BusQuery) params() map[string]string {
	p := map[string]string{
		"route":  q.Route,
		"status": string(q.Status),
		"sort":   q.Sort,
	}
	addIntParam(p, "limit", q.Limit)
	addIntParam(p, "offset", q.Offset)
	return p
}

// TripQuery filters the /trips list. Date is a calendar day in
// "2006-01-02" form.
type TripQuery struct {
	Date    string
	BusID   string
	RouteID string
	Status  TripStatus
	Limit   int
	Offset  int
}

func (q TripQuery) params() map[string]string {
	p := map[string]string{
		"date":    q.Date,
		"busId":   q.BusID,
		"routeId": q.RouteID,
		"status":  string(q.Status),
	}
	addIntParam(p, "limit", q.Limit)
	addIntParam(p, "offset", q.Offset)
	return p
}

func addIntParam(p map[string]string, name string, v int) {
	if v > 0 {
		p[name] = strconv.Itoa(v)
	}
}

func queryValues(params map[string]string) url.Values {
	values := url.Values{}
	for name, value := range params {
		if value != "" {
			values.Set(name, value)
		}
	}
	return values
}

// InsertRoute creates a route.
type InsertRoute struct {
	Name            string      `json:"name"`
	RouteCode       string      `json:"routeCode"`
	StartLocation   string      `json:"startLocation"`
	EndLocation     string      `json:"endLocation"`
	DistanceKM      float64     `json:"distance"`
	DurationMinutes int         `json:"duration"`
	Status          RouteStatus `json:"status,omitempty"`
}

// RouteUpdate is a partial route mutation; nil fields are left unchanged.
type RouteUpdate struct {
	Name            *string      `json:"name,omitempty"`
	RouteCode       *string      `json:"routeCode,omitempty"`
	StartLocation   *string      `json:"startLocation,omitempty"`
	EndLocation     *string      `json:"endLocation,omitempty"`
	DistanceKM      *float64     `json:"distance,omitempty"`
	DurationMinutes *int         `json:"duration,omitempty"`
	Status          *RouteStatus `json:"status,omitempty"`
}

// InsertBus creates a bus.
type InsertBus struct {
	BusNumber          string    `json:"busNumber"`
	RegistrationNumber string    `json:"registrationNumber"`
	RouteID            string    `json:"routeId,omitempty"`
	Capacity           int       `json:"capacity"`
	Status             BusStatus `json:"status,omitempty"`
}

// BusUpdate is a partial bus mutation; nil fields are left unchanged.
type BusUpdate struct {
	BusNumber          *string    `json:"busNumber,omitempty"`
	RegistrationNumber *string    `json:"registrationNumber,omitempty"`
	RouteID            *string    `json:"routeId,omitempty"`
	Capacity           *int       `json:"capacity,omitempty"`
	Status             *BusStatus `json:"status,omitempty"`
	GPSStatus          *string    `json:"gpsStatus,omitempty"`
}

// InsertTrip schedules a trip.
type InsertTrip struct {
	BusID                  string     `json:"busId"`
	RouteID                string     `json:"routeId"`
	DriverID               string     `json:"driverId,omitempty"`
	ScheduledDepartureTime time.Time  `json:"scheduledDepartureTime"`
	ScheduledArrivalTime   time.Time  `json:"scheduledArrivalTime"`
	Status                 TripStatus `json:"status,omitempty"`
}

// TripUpdate is a partial trip mutation; nil fields are left unchanged.
type TripUpdate struct {
	DriverID               *string     `json:"driverId,omitempty"`
	ScheduledDepartureTime *time.Time  `json:"scheduledDepartureTime,omitempty"`
	ScheduledArrivalTime   *time.Time  `json:"scheduledArrivalTime,omitempty"`
	DelayMinutes           *int        `json:"delayMinutes,omitempty"`
	PassengerCount         *int        `json:"passengerCount,omitempty"`
	Status                 *TripStatus `json:"status,omitempty"`
}

// AuthResult is the /auth/login and /auth/register success shape.
type AuthResult struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// SystemHealth is the /health response.
type SystemHealth struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	ResponseTime string `json:"responseTime"`
	Connections  int    `json:"connections"`
	DBStatus     string `json:"dbStatus"`
	GPSStatus    string `json:"gpsStatus"`
}

// DashboardMetrics is the operations roll-up rendered on the dashboard
// screen, computed client-side from the cached list reads.
type DashboardMetrics struct {
	ActiveRoutes   int
	TotalBuses     int
	ActiveBuses    int
	TodaysTrips    int
	CompletedTrips int
	SystemHealth   string
}
