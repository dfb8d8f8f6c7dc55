package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"liendesk/internal/errors"
	"liendesk/internal/logging"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTP is the JSON-over-HTTP client for the lien backend.
type HTTP struct {
	Base   string
	HTTP   *http.Client
	Logger *logging.Logger

	mu    sync.RWMutex
	token string
}

// Option configures an HTTP client.
type Option func(*HTTP)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *HTTP) { c.HTTP = hc } }

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTP) { c.HTTP = &http.Client{Timeout: d} }
}

// WithToken sets the bearer token.
func WithToken(token string) Option { return func(c *HTTP) { c.token = token } }

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option { return func(c *HTTP) { c.Logger = l } }

// NewHTTP returns a client for the backend at base.
func NewHTTP(base string, opts ...Option) *HTTP {
	c := &HTTP{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = logging.NopLogger()
	}
	c.Logger = c.Logger.WithComponent("gateway")
	return c
}

// SetToken replaces the bearer token sent with every request.
func (c *HTTP) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *HTTP) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, buf, "application/json", out)
}

func (c *HTTP) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *HTTP) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *HTTP) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.Base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()
	c.Logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode/100 != 2 {
		return decodeError(method, path, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorBody is the backend's error shape: either a field map or a message.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError turns a non-2xx response into a typed error. Validation
// statuses with a decodable body become BackendValidationError; everything
// else, including 401, is an HTTPError.
func decodeError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		var body errorBody
		if json.Unmarshal(raw, &body) == nil && (body.Message != "" || len(body.Errors) > 0) {
			return errors.NewBackendValidationError(resp.StatusCode, body.Message, body.Errors)
		}
	}
	return &errors.HTTPError{Method: method, Path: path, Status: resp.Status, Code: resp.StatusCode}
}
