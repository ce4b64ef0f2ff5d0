package client

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
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

const (
	PathLogin            = "/auth/login"
	PathRegister         = "/auth/register"
	PathConfirmEmail     = "/auth/confirm-email"
	PathUsers            = "/users/get"
	PathUpdateUsers      = "/users/update"
	PathDeleteUsers      = "/users/delete"
	PathDeleteUnverified = "/users/delete/unverified"

	// DefaultTimeout bounds a whole request, including reading the body.
	DefaultTimeout = 30 * time.Second

	maxBodySize    = 4 << 20
	maxMessageSize = 512
)

// publicPaths never carry the bearer credential.
var publicPaths = map[string]struct{}{
	PathLogin:        {},
	PathRegister:     {},
	PathConfirmEmail: {},
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   session.Store
	signal  *session.Signal
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "https://api.example.com/api". A non-positive timeout selects
// DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, store session.Store, signal *session.Signal, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		signal:  signal,
		log:     log.With("component", "api"),
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register maps a rejection mentioning "already exists" to ErrConflict, as
// some deployments answer duplicates with 400.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, PathRegister, nil, req, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == ErrRequest &&
			strings.Contains(strings.ToLower(apiErr.Message), "already exists") {
			apiErr.Kind = ErrConflict
		}
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ConfirmEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var resp MessageResponse
	q := url.Values{"token": []string{token}}
	if err := c.do(ctx, http.MethodGet, PathConfirmEmail, q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, PathUsers, nil, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *HTTPClient) UpdateUsers(ctx context.Context, req UpdateUsersRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPut, PathUpdateUsers, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteUsers(ctx context.Context, req DeleteUsersRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodDelete, PathDeleteUsers, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteUnverified(ctx context.Context) (*DeleteUnverifiedResponse, error) {
	var resp DeleteUnverifiedResponse
	if err := c.do(ctx, http.MethodDelete, PathDeleteUnverified, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &APIError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &APIError{Kind: ErrNetwork, Status: resp.StatusCode, Err: err}
	}
	c.log.Debug(ctx, "request done", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(ctx, path)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Kind: ErrProtocol, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func (c *HTTPClient) authorize(req *http.Request, path string) {
	if _, public := publicPaths[path]; public {
		return
	}
	if token, ok := c.store.Token(); ok {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
}

// invalidateSession runs once per 401 response: the token is dropped and one
// event is published for all subscribers.
func (c *HTTPClient) invalidateSession(ctx context.Context, path string) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	ev := c.signal.Publish(path)
	c.log.Info(ctx, "session invalidated", "path", path, "seq", ev.Seq)
}

func statusError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Message: extractMessage(body)}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = ErrUnauthorized
	case status == http.StatusForbidden:
		e.Kind = ErrForbidden
	case status == http.StatusConflict:
		e.Kind = ErrConflict
	case status >= http.StatusInternalServerError:
		e.Kind = ErrServer
	default:
		e.Kind = ErrRequest
	}
	return e
}

// extractMessage prefers a JSON "message" field and falls back to the body
// text.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return ""
	}
	if len(text) > maxMessageSize {
		text = text[:maxMessageSize]
	}
	return text
}
