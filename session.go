package fleetadmin

import (
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the client-held proof of authentication plus the transient
// state of the auth operations. Exactly one Session exists per Client. It
// starts empty, is replaced atomically by a successful Login or Register,
// and is cleared by Logout. It is never persisted: every process start
// requires a fresh login.
//
// Invariant: IsAuthenticated is true iff both User and Token are set. The
// two are only ever written together.
type Session struct {
	User            *User
	Token           string
	IsAuthenticated bool
	// TokenExpiresAt is the exp claim of the bearer token when the token is
	// a parseable JWT, zero otherwise. The claim is read without signature
	// verification; the client has no key and only uses it to warn before
	// the API starts rejecting calls.
	TokenExpiresAt time.Time

	// IsLoading is true while a Login or Register call is outstanding.
	IsLoading bool
	// LoginErr is the most recent Login failure, cleared by the next
	// attempt. Client-side validation rejections never set it.
	LoginErr error
	// RegisterErr is the most recent Register failure, cleared by the next
	// attempt.
	RegisterErr error
}

// sessionState owns the Session. Every mutation happens under one lock and
// produces exactly one notification to each subscriber, in mutation order.
type sessionState struct {
	mu  sync.RWMutex
	cur Session

	// notifyMu is held across mutate+notify so subscribers observe updates
	// in the order they were applied.
	notifyMu sync.Mutex
	subs     map[uint64]func(Session)
	nextSub  uint64
}

func newSessionState() *sessionState {
	return &sessionState{subs: make(map[uint64]func(Session))}
}

// snapshot returns a defensive copy; the caller may hold it indefinitely.
func (s *sessionState) snapshot() Session {
	out := s.cur
	if s.cur.User != nil {
		user := *s.cur.User
		out.User = &user
	}
	return out
}

func (s *sessionState) State() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *sessionState) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Subscribe registers fn for session-change notifications and returns its
// cancel func. fn runs on the mutating goroutine and must not block.
func (s *sessionState) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies mutate under the session lock and notifies subscribers
// with the resulting snapshot. Concurrent updates serialize here: last
// write wins, the session never holds a torn state.
func (s *sessionState) update(mutate func(*Session)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.cur)
	snap := s.snapshot()

	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Session), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// setAuthenticated installs a new identity. User, token, and the
// authenticated flag change together; stale auth errors are cleared.
func (s *sessionState) setAuthenticated(user User, token string) {
	expiresAt := tokenExpiry(token)
	s.update(func(cur *Session) {
		cur.User = &user
		cur.Token = token
		cur.IsAuthenticated = true
		cur.TokenExpiresAt = expiresAt
		cur.IsLoading = false
		cur.LoginErr = nil
		cur.RegisterErr = nil
	})
}

// clear resets the session to its startup state. Auth errors survive so a
// failed login remains visible after an explicit logout elsewhere.
func (s *sessionState) clear() {
	s.update(func(cur *Session) {
		cur.User = nil
		cur.Token = ""
		cur.IsAuthenticated = false
		cur.TokenExpiresAt = time.Time{}
		cur.IsLoading = false
	})
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Returns
// zero for opaque tokens.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
