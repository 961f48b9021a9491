package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	fleetadmin "github.com/fleetops/fleetadmin"
)

const defaultListLimit = 50

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultListLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

/*
====================================
ROUTES
====================================
*/

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")

	s.mu.RLock()
	matched := make([]fleetadmin.Route, 0, len(s.routes))
	for _, route := range s.routes {
		if status != "" && string(route.Status) != status {
			continue
		}
		matched = append(matched, *route)
	}
	s.mu.RUnlock()

	switch q.Get("sort") {
	case "distance":
		sort.Slice(matched, func(i, j int) bool { return matched[i].DistanceKM < matched[j].DistanceKM })
	case "created":
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}

	limit, offset := pagination(r)
	writeJSON(w, http.StatusOK, fleetadmin.RouteList{
		Routes: page(matched, limit, offset),
		Total:  len(matched),
	})
}

func (s *Server) handleCreateRoute(w http.ResponseWriter, r *http.Request) {
	var in fleetadmin.InsertRoute
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "route name required")
		return
	}
	if in.Status == "" {
		in.Status = fleetadmin.RouteActive
	}

	now := time.Now().UTC()
	route := &fleetadmin.Route{
		ID:              uuid.NewString(),
		Name:            in.Name,
		RouteCode:       in.RouteCode,
		StartLocation:   in.StartLocation,
		EndLocation:     in.EndLocation,
		DistanceKM:      in.DistanceKM,
		DurationMinutes: in.DurationMinutes,
		Status:          in.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	s.routes[route.ID] = route
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, route)
}

func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	route, ok := s.routes[mux.Vars(r)["id"]]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleUpdateRoute(w http.ResponseWriter, r *http.Request) {
	var update fleetadmin.RouteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	route, ok := s.routes[mux.Vars(r)["id"]]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	if update.Name != nil {
		route.Name = *update.Name
	}
	if update.RouteCode != nil {
		route.RouteCode = *update.RouteCode
	}
	if update.StartLocation != nil {
		route.StartLocation = *update.StartLocation
	}
	if update.EndLocation != nil {
		route.EndLocation = *update.EndLocation
	}
	if update.DistanceKM != nil {
		route.DistanceKM = *update.DistanceKM
	}
	if update.DurationMinutes != nil {
		route.DurationMinutes = *update.DurationMinutes
	}
	if update.Status != nil {
		route.Status = *update.Status
	}
	route.UpdatedAt = time.Now().UTC()
	out := *route
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.routes[id]
	delete(s.routes, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*
====================================
BUSES
====================================
*/

func (s *Server) handleListBuses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	routeID := q.Get("route")
	status := q.Get("status")

	s.mu.RLock()
	matched := make([]fleetadmin.Bus, 0, len(s.buses))
	for _, bus := range s.buses {
		if routeID != "" && bus.RouteID != routeID {
			continue
		}
		if status != "" && string(bus.Status) != status {
			continue
		}
		matched = append(matched, *bus)
	}
	s.mu.RUnlock()

	switch q.Get("sort") {
	case "capacity":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Capacity < matched[j].Capacity })
	case "created":
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].BusNumber < matched[j].BusNumber })
	}

	limit, offset := pagination(r)
	writeJSON(w, http.StatusOK, fleetadmin.BusList{
		Buses: page(matched, limit, offset),
		Total: len(matched),
	})
}

func (s *Server) handleCreateBus(w http.ResponseWriter, r *http.Request) {
	var in fleetadmin.InsertBus
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.BusNumber == "" {
		writeError(w, http.StatusBadRequest, "bus number required")
		return
	}
	if in.Status == "" {
		in.Status = fleetadmin.BusActive
	}

	now := time.Now().UTC()
	bus := &fleetadmin.Bus{
		ID:                 uuid.NewString(),
		BusNumber:          in.BusNumber,
		RegistrationNumber: in.RegistrationNumber,
		RouteID:            in.RouteID,
		Capacity:           in.Capacity,
		Status:             in.Status,
		GPSStatus:          "online",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	s.mu.Lock()
	s.buses[bus.ID] = bus
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, bus)
}

func (s *Server) handleGetBus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	bus, ok := s.buses[mux.Vars(r)["id"]]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "bus not found")
		return
	}
	writeJSON(w, http.StatusOK, bus)
}

func (s *Server) handleUpdateBus(w http.ResponseWriter, r *http.Request) {
	var update fleetadmin.BusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	bus, ok := s.buses[mux.Vars(r)["id"]]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "bus not found")
		return
	}
	if update.BusNumber != nil {
		bus.BusNumber = *update.BusNumber
	}
	if update.RegistrationNumber != nil {
		bus.RegistrationNumber = *update.RegistrationNumber
	}
	if update.RouteID != nil {
		bus.RouteID = *update.RouteID
	}
	if update.Capacity != nil {
		bus.Capacity = *update.Capacity
	}
	if update.Status != nil {
		bus.Status = *update.Status
	}
	if update.GPSStatus != nil {
		bus.GPSStatus = *update.GPSStatus
	}
	bus.UpdatedAt = time.Now().UTC()
	out := *bus
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteBus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.buses[id]
	delete(s.buses, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "bus not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*
====================================
TRIPS
====================================
*/

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	busID := q.Get("busId")
	routeID := q.Get("routeId")
	status := q.Get("status")

	s.mu.RLock()
	matched := make([]fleetadmin.Trip, 0, len(s.trips))
	for _, trip := range s.trips {
		if date != "" && trip.ScheduledDepartureTime.Format("2006-01-02") != date {
			continue
		}
		if busID != "" && trip.BusID != busID {
			continue
		}
		if routeID != "" && trip.RouteID != routeID {
			continue
		}
		if status != "" && string(trip.Status) != status {
			continue
		}
		matched = append(matched, *trip)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledDepartureTime.Before(matched[j].ScheduledDepartureTime)
	})

	limit, offset := pagination(r)
	writeJSON(w, http.StatusOK, fleetadmin.TripList{
		Trips: page(matched, limit, offset),
		Total: len(matched),
	})
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var in fleetadmin.InsertTrip
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.BusID == "" || in.RouteID == "" {
		writeError(w, http.StatusBadRequest, "busId and routeId required")
		return
	}
	if in.Status == "" {
		in.Status = fleetadmin.TripScheduled
	}

	now := time.Now().UTC()
	trip := &fleetadmin.Trip{
		ID:                     uuid.NewString(),
		BusID:                  in.BusID,
		RouteID:                in.RouteID,
		DriverID:               in.DriverID,
		ScheduledDepartureTime: in.ScheduledDepartureTime,
		ScheduledArrivalTime:   in.ScheduledArrivalTime,
		Status:                 in.Status,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	s.mu.Lock()
	s.trips[trip.ID] = trip
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, trip)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	trip, ok := s.trips[mux.Vars(r)["id"]]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var update fleetadmin.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	trip, ok := s.trips[mux.Vars(r)["id"]]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	if update.DriverID != nil {
		trip.DriverID = *update.DriverID
	}
	if update.ScheduledDepartureTime != nil {
		trip.ScheduledDepartureTime = *update.ScheduledDepartureTime
	}
	if update.ScheduledArrivalTime != nil {
		trip.ScheduledArrivalTime = *update.ScheduledArrivalTime
	}
	if update.DelayMinutes != nil {
		trip.DelayMinutes = *update.DelayMinutes
	}
	if update.PassengerCount != nil {
		trip.PassengerCount = *update.PassengerCount
	}
	if update.Status != nil {
		trip.Status = *update.Status
	}
	trip.UpdatedAt = time.Now().UTC()
	out := *trip
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.trips[id]
	delete(s.trips, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
