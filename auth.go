package fleetadmin

import (
	"context"
	"net/http"
	"time"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Login authenticates against POST /auth/login. Credentials are validated
// client-side first: rejected input never reaches the network and never
// sets Session.LoginErr.
//
// On success the session atomically becomes the returned identity and the
// whole query cache is cleared, since a new identity may be authorized for
// different data. On API failure the session is left unchanged apart from
// LoginErr, and the error is returned verbatim. Auth calls are never
// retried.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if err := c.validateCredentials(username, password); err != nil {
		c.metrics.Inc(MetricValidationRejected)
		return AuthResult{}, err
	}

	c.session.update(func(s *Session) {
		s.IsLoading = true
		s.LoginErr = nil
	})

	var result AuthResult
	err := c.transport.Do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &result, 1)
	if err != nil {
		c.session.update(func(s *Session) {
			s.IsLoading = false
			s.LoginErr = err
		})
		c.metrics.Inc(MetricLoginFailure)
		c.emitAuthEvent(ctx, EventLogin, username, err)
		return AuthResult{}, err
	}

	c.session.setAuthenticated(result.User, result.Token)
	c.metrics.Inc(MetricLoginSuccess)
	c.emitAuthEvent(ctx, EventLogin, username, nil)

	if err := c.clearCache(ctx); err != nil {
		// Authenticated, but stale prior-identity entries may survive.
		return result, err
	}
	return result, nil
}

// Register creates an account against POST /auth/register and, like Login,
// installs the returned identity on success. role must be one of admin,
// operator, or viewer.
func (c *Client) Register(ctx context.Context, username, password string, role Role) (AuthResult, error) {
	if err := c.validateCredentials(username, password); err != nil {
		c.metrics.Inc(MetricValidationRejected)
		return AuthResult{}, err
	}
	if !role.Valid() {
		c.metrics.Inc(MetricValidationRejected)
		return AuthResult{}, ErrRoleInvalid
	}

	c.session.update(func(s *Session) {
		s.IsLoading = true
		s.RegisterErr = nil
	})

	var result AuthResult
	err := c.transport.Do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Password: password,
		Role:     role,
	}, &result, 1)
	if err != nil {
		c.session.update(func(s *Session) {
			s.IsLoading = false
			s.RegisterErr = err
		})
		c.metrics.Inc(MetricRegisterFailure)
		c.emitAuthEvent(ctx, EventRegister, username, err)
		return AuthResult{}, err
	}

	c.session.setAuthenticated(result.User, result.Token)
	c.metrics.Inc(MetricRegisterSuccess)
	c.emitAuthEvent(ctx, EventRegister, username, nil)

	if err := c.clearCache(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// Logout resets the session to its empty state and clears the entire
// cache, so the next authenticated session re-fetches everything and never
// observes the previous user's data. The session is cleared even when the
// cache store fails; that failure is returned.
func (c *Client) Logout(ctx context.Context) error {
	state := c.session.State()
	username := ""
	if state.User != nil {
		username = state.User.Username
	}

	c.session.clear()
	c.metrics.Inc(MetricLogout)
	c.emitAuthEvent(ctx, EventLogout, username, nil)

	return c.clearCache(ctx)
}

// State returns a snapshot of the current session.
func (c *Client) State() Session {
	return c.session.State()
}

// Subscribe registers fn for session-change notifications, delivered in
// mutation order on the mutating goroutine. The returned func cancels the
// subscription.
func (c *Client) Subscribe(fn func(Session)) func() {
	return c.session.Subscribe(fn)
}

func (c *Client) validateCredentials(username, password string) error {
	if len(username) < c.config.Credentials.MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(password) < c.config.Credentials.MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (c *Client) clearCache(ctx context.Context) error {
	c.metrics.Inc(MetricCacheCleared)
	// Store failures are counted by the cache's OnStoreError hook.
	return c.cache.Clear(ctx)
}

func (c *Client) emitAuthEvent(ctx context.Context, eventType, username string, err error) {
	event := ClientEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Username:  username,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	c.events.Emit(ctx, event)
}
