package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	fleetadmin "github.com/fleetops/fleetadmin"
)

// Config tunes the mock server.
type Config struct {
	// JWTSecret signs issued tokens. Defaults to a fixed development
	// secret.
	JWTSecret []byte
	// TokenTTL bounds issued tokens. Defaults to 24h.
	TokenTTL time.Duration
	// Seed loads the demo fleet (routes, buses, today's trips, and the
	// admin/admin123 user) at startup.
	Seed bool
}

type userRecord struct {
	user         fleetadmin.User
	passwordHash []byte
}

// Server implements the fleet API surface over in-memory stores.
type Server struct {
	cfg     Config
	router  *mux.Router
	started time.Time

	mu     sync.RWMutex
	users  map[string]*userRecord // keyed by username
	routes map[string]*fleetadmin.Route
	buses  map[string]*fleetadmin.Bus
	trips  map[string]*fleetadmin.Trip
}

// New builds a ready-to-serve mock API.
func New(cfg Config) *Server {
	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = []byte("fleet-mockapi-dev-secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	s := &Server{
		cfg:     cfg,
		started: time.Now(),
		users:   make(map[string]*userRecord),
		routes:  make(map[string]*fleetadmin.Route),
		buses:   make(map[string]*fleetadmin.Bus),
		trips:   make(map[string]*fleetadmin.Trip),
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/routes", s.handleListRoutes).Methods(http.MethodGet)
	protected.HandleFunc("/routes", s.handleCreateRoute).Methods(http.MethodPost)
	protected.HandleFunc("/routes/{id}", s.handleGetRoute).Methods(http.MethodGet)
	protected.HandleFunc("/routes/{id}", s.handleUpdateRoute).Methods(http.MethodPut)
	protected.HandleFunc("/routes/{id}", s.handleDeleteRoute).Methods(http.MethodDelete)
	protected.HandleFunc("/buses", s.handleListBuses).Methods(http.MethodGet)
	protected.HandleFunc("/buses", s.handleCreateBus).Methods(http.MethodPost)
	protected.HandleFunc("/buses/{id}", s.handleGetBus).Methods(http.MethodGet)
	protected.HandleFunc("/buses/{id}", s.handleUpdateBus).Methods(http.MethodPut)
	protected.HandleFunc("/buses/{id}", s.handleDeleteBus).Methods(http.MethodDelete)
	protected.HandleFunc("/trips", s.handleListTrips).Methods(http.MethodGet)
	protected.HandleFunc("/trips", s.handleCreateTrip).Methods(http.MethodPost)
	protected.HandleFunc("/trips/{id}", s.handleGetTrip).Methods(http.MethodGet)
	protected.HandleFunc("/trips/{id}", s.handleUpdateTrip).Methods(http.MethodPut)
	protected.HandleFunc("/trips/{id}", s.handleDeleteTrip).Methods(http.MethodDelete)
	s.router = r

	if cfg.Seed {
		s.seed()
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

/*
====================================
AUTH
====================================
*/

type credentialsBody struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     fleetadmin.Role `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.RLock()
	record, ok := s.users[body.Username]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(record.passwordHash, []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(record.user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}
	writeJSON(w, http.StatusOK, fleetadmin.AuthResult{
		User:    record.user,
		Token:   token,
		Message: "login successful",
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Username) < 3 {
		writeError(w, http.StatusBadRequest, "username must be at least 3 characters")
		return
	}
	if len(body.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	role := body.Role
	if role == "" {
		role = fleetadmin.RoleOperator
	}
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "password hashing failed")
		return
	}

	s.mu.Lock()
	if _, exists := s.users[body.Username]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	record := &userRecord{
		user: fleetadmin.User{
			ID:        uuid.NewString(),
			Username:  body.Username,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	s.users[body.Username] = record
	s.mu.Unlock()

	token, err := s.issueToken(record.user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}
	writeJSON(w, http.StatusCreated, fleetadmin.AuthResult{
		User:    record.user,
		Token:   token,
		Message: "registration successful",
	})
}

func (s *Server) issueToken(user fleetadmin.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.cfg.JWTSecret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

/*
====================================
HEALTH
====================================
*/

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	connections := len(s.users)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, fleetadmin.SystemHealth{
		Status:       "healthy",
		Uptime:       time.Since(s.started).Truncate(time.Second).String(),
		ResponseTime: "12ms",
		Connections:  connections,
		DBStatus:     "connected",
		GPSStatus:    "online",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
