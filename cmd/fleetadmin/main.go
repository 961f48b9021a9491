// Command fleetadmin is an interactive shell over the fleet admin API.
// It authenticates once, then serves list and mutation commands from the
// client-side query cache.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	fleetadmin "github.com/fleetops/fleetadmin"
)

// fileConfig is the optional YAML config file shape.
type fileConfig struct {
	BaseURL   string `yaml:"baseUrl"`
	RedisAddr string `yaml:"redisAddr"`
	// StaleTTLRaw is a duration string, e.g. "5m".
	StaleTTLRaw string `yaml:"staleTtl"`
	EventLog    bool   `yaml:"eventLog"`

	staleTTL time.Duration
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		baseURL    = flag.String("base-url", "", "fleet API base URL (overrides config file)")
		redisAddr  = flag.String("redis-addr", "", "redis address for a shared cache; empty keeps the cache in-process")
		staleTTL   = flag.Duration("stale-ttl", 0, "cache staleness window (overrides config file)")
		eventLog   = flag.Bool("event-log", false, "write client events as JSON lines to stderr")
	)
	flag.Parse()

	cfg := fileConfig{BaseURL: "http://localhost:3000"}
	if *configPath != "" {
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(2)
		}
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *redisAddr != "" {
		cfg.RedisAddr = *redisAddr
	}
	if *staleTTL > 0 {
		cfg.staleTTL = *staleTTL
	}
	if *eventLog {
		cfg.EventLog = true
	}

	builder := fleetadmin.New().WithBaseURL(cfg.BaseURL)
	if cfg.staleTTL > 0 {
		builder = builder.WithStaleTTL(cfg.staleTTL)
	}
	if cfg.RedisAddr != "" {
		builder = builder.WithRedis(redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{cfg.RedisAddr},
		}))
	}
	if cfg.EventLog {
		builder = builder.WithEventSink(fleetadmin.NewJSONWriterSink(os.Stderr))
	}

	client, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(2)
	}
	defer client.Close()

	shell := &shell{client: client, out: os.Stdout}
	shell.run(bufio.NewScanner(os.Stdin))
}

func loadConfigFile(path string, cfg *fileConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return err
	}
	if cfg.StaleTTLRaw != "" {
		d, err := time.ParseDuration(cfg.StaleTTLRaw)
		if err != nil {
			return fmt.Errorf("staleTtl: %w", err)
		}
		cfg.staleTTL = d
	}
	return nil
}

type shell struct {
	client *fleetadmin.Client
	out    *os.File
}

func (s *shell) run(in *bufio.Scanner) {
	fmt.Fprintln(s.out, "fleetadmin shell. Type 'help' for commands, 'quit' to exit.")
	for {
		state := s.client.State()
		if state.IsAuthenticated {
			fmt.Fprintf(s.out, "%s> ", state.User.Username)
		} else {
			fmt.Fprint(s.out, "(unauthenticated)> ")
		}
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *shell) dispatch(cmd string, args []string) error {
	ctx := context.Background()

	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "login":
		return s.login(ctx, args)
	case "register":
		return s.register(ctx, args)
	case "logout":
		return s.client.Logout(ctx)
	case "whoami":
		return s.whoami()
	case "routes":
		return s.routes(ctx, args)
	case "buses":
		return s.buses(ctx, args)
	case "trips":
		return s.trips(ctx, args)
	case "health":
		return s.health(ctx)
	case "dashboard":
		return s.dashboard(ctx)
	case "metrics":
		return s.metrics()
	default:
		return fmt.Errorf("unknown command %q; try 'help'", cmd)
	}
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `commands:
  login <username> <password>
  register <username> <password> [role]
  logout
  whoami
  routes [-status s] [-sort f] [-limit n]
  routes get|delete <id>
  buses [-route id] [-status s] [-limit n]
  buses get|delete <id>
  trips [-date YYYY-MM-DD] [-bus id] [-route id] [-status s] [-limit n]
  trips get|cancel|delete <id>
  health
  dashboard
  metrics
  quit
`)
}

func (s *shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <username> <password>")
	}
	res, err := s.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "logged in as %s (%s)\n", res.User.Username, res.User.Role)
	return nil
}

func (s *shell) register(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: register <username> <password> [role]")
	}
	role := fleetadmin.RoleOperator
	if len(args) == 3 {
		role = fleetadmin.Role(args[2])
	}
	res, err := s.client.Register(ctx, args[0], args[1], role)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "registered %s (%s)\n", res.User.Username, res.User.Role)
	return nil
}

func (s *shell) whoami() error {
	state := s.client.State()
	if !state.IsAuthenticated {
		fmt.Fprintln(s.out, "not logged in")
		return nil
	}
	fmt.Fprintf(s.out, "%s role=%s token expires %s\n",
		state.User.Username, state.User.Role, state.TokenExpiresAt.Format(time.RFC3339))
	return nil
}

func (s *shell) routes(ctx context.Context, args []string) error {
	if len(args) > 0 && (args[0] == "get" || args[0] == "delete") {
		if len(args) != 2 {
			return fmt.Errorf("usage: routes %s <id>", args[0])
		}
		if args[0] == "delete" {
			if err := s.client.DeleteRoute(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "deleted")
			return nil
		}
		route, err := s.client.GetRoute(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s %s %s -> %s %.1fkm %dmin [%s]\n",
			route.ID, route.Name, route.StartLocation, route.EndLocation,
			route.DistanceKM, route.DurationMinutes, route.Status)
		return nil
	}

	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	status := fs.String("status", "", "")
	sortBy := fs.String("sort", "", "")
	limit := fs.Int("limit", 0, "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := s.client.ListRoutes(ctx, fleetadmin.RouteQuery{
		Status: fleetadmin.RouteStatus(*status),
		Sort:   *sortBy,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	for _, r := range list.Routes {
		fmt.Fprintf(s.out, "%-14s %-28s %s -> %s [%s]\n",
			r.ID, r.Name, r.StartLocation, r.EndLocation, r.Status)
	}
	fmt.Fprintf(s.out, "%d of %d routes\n", len(list.Routes), list.Total)
	return nil
}

func (s *shell) buses(ctx context.Context, args []string) error {
	if len(args) > 0 && (args[0] == "get" || args[0] == "delete") {
		if len(args) != 2 {
			return fmt.Errorf("usage: buses %s <id>", args[0])
		}
		if args[0] == "delete" {
			if err := s.client.DeleteBus(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "deleted")
			return nil
		}
		bus, err := s.client.GetBus(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s %s reg=%s cap=%d route=%s gps=%s [%s]\n",
			bus.ID, bus.BusNumber, bus.RegistrationNumber, bus.Capacity,
			bus.RouteID, bus.GPSStatus, bus.Status)
		return nil
	}

	fs := flag.NewFlagSet("buses", flag.ContinueOnError)
	route := fs.String("route", "", "")
	status := fs.String("status", "", "")
	limit := fs.Int("limit", 0, "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := s.client.ListBuses(ctx, fleetadmin.BusQuery{
		Route:  *route,
		Status: fleetadmin.BusStatus(*status),
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	for _, b := range list.Buses {
		fmt.Fprintf(s.out, "%-14s %-8s cap=%-3d gps=%-7s [%s]\n",
			b.ID, b.BusNumber, b.Capacity, b.GPSStatus, b.Status)
	}
	fmt.Fprintf(s.out, "%d of %d buses\n", len(list.Buses), list.Total)
	return nil
}

func (s *shell) trips(ctx context.Context, args []string) error {
	if len(args) > 0 && (args[0] == "get" || args[0] == "cancel" || args[0] == "delete") {
		if len(args) != 2 {
			return fmt.Errorf("usage: trips %s <id>", args[0])
		}
		switch args[0] {
		case "delete":
			if err := s.client.DeleteTrip(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "deleted")
			return nil
		case "cancel":
			trip, err := s.client.CancelTrip(ctx, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "trip %s cancelled\n", trip.ID)
			return nil
		}
		trip, err := s.client.GetTrip(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s bus=%s route=%s dep=%s arr=%s delay=%dmin pax=%d [%s]\n",
			trip.ID, trip.BusID, trip.RouteID,
			trip.ScheduledDepartureTime.Format("15:04"),
			trip.ScheduledArrivalTime.Format("15:04"),
			trip.DelayMinutes, trip.PassengerCount, trip.Status)
		return nil
	}

	fs := flag.NewFlagSet("trips", flag.ContinueOnError)
	date := fs.String("date", "", "")
	bus := fs.String("bus", "", "")
	route := fs.String("route", "", "")
	status := fs.String("status", "", "")
	limit := fs.Int("limit", 0, "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := s.client.ListTrips(ctx, fleetadmin.TripQuery{
		Date:    *date,
		BusID:   *bus,
		RouteID: *route,
		Status:  fleetadmin.TripStatus(*status),
		Limit:   *limit,
	})
	if err != nil {
		return err
	}
	for _, t := range list.Trips {
		fmt.Fprintf(s.out, "%-14s bus=%-14s dep=%s delay=%-3d [%s]\n",
			t.ID, t.BusID, t.ScheduledDepartureTime.Format("15:04"), t.DelayMinutes, t.Status)
	}
	fmt.Fprintf(s.out, "%d of %d trips\n", len(list.Trips), list.Total)
	return nil
}

func (s *shell) health(ctx context.Context) error {
	h, err := s.client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "status=%s uptime=%s response=%s connections=%d db=%s gps=%s\n",
		h.Status, h.Uptime, h.ResponseTime, h.Connections, h.DBStatus, h.GPSStatus)
	return nil
}

func (s *shell) dashboard(ctx context.Context) error {
	m, err := s.client.DashboardMetrics(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "active routes: %d\n", m.ActiveRoutes)
	fmt.Fprintf(s.out, "buses: %d active of %d\n", m.ActiveBuses, m.TotalBuses)
	fmt.Fprintf(s.out, "today's trips: %d (%d completed)\n", m.TodaysTrips, m.CompletedTrips)
	fmt.Fprintf(s.out, "system health: %s\n", m.SystemHealth)
	return nil
}

func (s *shell) metrics() error {
	snap := s.client.MetricsSnapshot()
	fmt.Fprintf(s.out, "cache hits=%d misses=%d invalidations=%d\n",
		snap.Counters[fleetadmin.MetricCacheHit],
		snap.Counters[fleetadmin.MetricCacheMiss],
		snap.Counters[fleetadmin.MetricCacheInvalidation])
	fmt.Fprintf(s.out, "retries=%d request failures=%d events dropped=%d\n",
		snap.Counters[fleetadmin.MetricRequestRetry],
		snap.Counters[fleetadmin.MetricRequestFailure],
		s.client.EventsDropped())
	return nil
}
