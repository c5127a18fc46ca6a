package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL targets a companion server running on the same host.
const DefaultBaseURL = "http://localhost:8081/api/v1"

var (
	// ErrNoSession means an authenticated call was attempted with no
	// stored api key. No network request is made in that case.
	ErrNoSession = errors.New("no active session, login required")

	// ErrSessionExpired means the server rejected the stored api key.
	// The session is purged before this error is returned, so the
	// next authenticated call fails fast with ErrNoSession instead of
	// retrying a key already known to be dead.
	ErrSessionExpired = errors.New("session expired or invalid, login again")
)

// APIError is any non-2xx outcome other than an auth failure, carrying
// the server-supplied message when one was decodable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the typed access layer to the remote catalogue API. All
// endpoint methods funnel through call, which owns bearer injection,
// session expiry and error normalization.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	session    SessionStore
	token      string
}

// Option customizes a Client at construction time.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.session = s }
}

// New builds a Client against baseURL and loads any persisted session
// from the configured store.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		store, err := NewFileSessionStore("")
		if err != nil {
			return nil, err
		}
		c.session = store
	}
	token, err := c.session.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	c.token = token
	return c, nil
}

// HasSession reports whether an api key is currently held.
func (c *Client) HasSession() bool {
	return c.token != ""
}

// Login exchanges credentials against an api key and persists it. A
// 401 here means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	payload := map[string]string{"username": username, "password": password}
	var result LoginResponse
	if err := c.call(ctx, http.MethodPost, "/login", payload, &result, false); err != nil {
		return LoginResponse{}, err
	}
	if err := c.session.Save(result.APIKey); err != nil {
		return LoginResponse{}, fmt.Errorf("failed to persist session: %w", err)
	}
	c.token = result.APIKey
	c.logger.Info("logged in", zap.String("username", username))
	return result, nil
}

// Logout discards the held api key locally. The contract has no
// server-side revocation call.
func (c *Client) Logout() error {
	c.token = ""
	if err := c.session.Clear(); err != nil {
		return err
	}
	c.logger.Info("logged out")
	return nil
}

// clearSession drops the api key from memory and the store. Store
// failures are logged, not surfaced, since the session is already
// unusable either way.
func (c *Client) clearSession() {
	c.token = ""
	if err := c.session.Clear(); err != nil {
		c.logger.Warn("failed to clear stored session", zap.Error(err))
	}
}

// call performs one API request. Authenticated calls short-circuit to
// ErrNoSession with no network traffic when no key is held, and map a
// 401 response to purge-then-ErrSessionExpired. Every other non-2xx
// status becomes an *APIError whose message falls back to
// "HTTP <status>" when the body carries no decodable message.
func (c *Client) call(ctx context.Context, method, endpoint string, body, out interface{}, authenticated bool) error {
	if authenticated && c.token == "" {
		return ErrNoSession
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call completed",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: c.errorMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response of %s %s: %w", method, endpoint, err)
		}
	}
	return nil
}

// errorMessage extracts the message field of an error body, with the
// status-based fallback for bodies that are empty or not JSON.
func (c *Client) errorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
