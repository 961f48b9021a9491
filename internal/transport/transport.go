package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ErrTransport wraps network and decode failures that never produced a
// usable HTTP response. API-level failures are reported as *APIError
// instead.
var ErrTransport = errors.New("transport failure")

// APIError is a non-2xx response from the fleet API. Message is the
// server's error body `message` field verbatim, falling back to the HTTP
// status text when the body is absent or unparseable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Retryable reports whether a failed attempt may be retried under the
// bounded retry policy: transport failures and 5xx responses only. Client
// errors (4xx) are deterministic and never retried.
func Retryable(err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

// Doer is the minimal HTTP client surface the transport needs. Satisfied
// by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the current bearer token, or "" when the session is
// unauthenticated. The Authorization header is attached only for non-empty
// tokens.
type TokenSource func() string

// Hooks receives transport-level observations. All fields are optional.
type Hooks struct {
	OnRetry   func(method, path string)
	OnFailure func(method, path string, err error)
}

// Transport issues JSON requests against a single base URL.
type Transport struct {
	base   *url.URL
	client Doer
	token  TokenSource
	hooks  Hooks
}

// New parses baseURL and returns a Transport. client defaults to
// http.DefaultClient and token to an empty source.
func New(baseURL string, client Doer, token TokenSource, hooks Hooks) (*Transport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", ErrTransport, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q must be absolute", ErrTransport, baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Transport{base: u, client: client, token: token, hooks: hooks}, nil
}

type requestIDContextKey struct{}

// WithRequestID pins the X-Request-ID header for requests issued under
// ctx. Without it every attempt carries a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// GetRaw issues a GET and returns the raw 2xx response body. The cache
// layer stores these bytes as the entry payload.
func (t *Transport) GetRaw(ctx context.Context, path string, query url.Values, attempts int) ([]byte, error) {
	return t.roundTrip(ctx, http.MethodGet, path, query, nil, attempts)
}

// Do issues a request with an optional JSON body and decodes the 2xx
// response into out when out is non-nil. Empty response bodies (DELETE)
// leave out untouched.
func (t *Transport) Do(ctx context.Context, method, path string, body any, out any, attempts int) error {
	raw, err := t.roundTrip(ctx, method, path, nil, body, attempts)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %v", ErrTransport, method, path, err)
	}
	return nil
}

func (t *Transport) roundTrip(ctx context.Context, method, path string, query url.Values, body any, attempts int) ([]byte, error) {
	if attempts < 1 {
		attempts = 1
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s %s body: %v", ErrTransport, method, path, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if t.hooks.OnRetry != nil {
				t.hooks.OnRetry(method, path)
			}
			if err := ctx.Err(); err != nil {
				break
			}
		}

		raw, err := t.attempt(ctx, method, path, query, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !Retryable(err) {
			break
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no attempts made", ErrTransport)
	}
	if t.hooks.OnFailure != nil {
		t.hooks.OnFailure(method, path, lastErr)
	}
	return nil, lastErr
}

func (t *Transport) attempt(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := t.resolve(path, query)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s %s: %v", ErrTransport, method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if token := t.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s response: %v", ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		}
	}

	return raw, nil
}

func (t *Transport) resolve(path string, query url.Values) string {
	joined := strings.TrimRight(t.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u := *t.base
	u.Path = joined
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// errorMessage extracts the `message` field of the conventional error
// body, falling back to the HTTP status text.
func errorMessage(raw []byte, statusCode int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	text := http.StatusText(statusCode)
	if text == "" {
		text = fmt.Sprintf("HTTP %d", statusCode)
	}
	return text
}
