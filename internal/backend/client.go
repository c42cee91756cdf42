package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

const (
	// DefaultSuggestionLimit caps the suggestion list when no limit is given
	DefaultSuggestionLimit = 6
	// DefaultPlaceholderImage is used when a product carries no image at all
	DefaultPlaceholderImage = "/no-image.png"

	cartKeyHeader = "X-Cart-Key"
)

// Client talks to the storefront REST backend. Every authenticated call
// takes the caller's session explicitly.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
	placeholder string
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPlaceholderImage sets the image used when a product has none
func WithPlaceholderImage(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.placeholder = path
		}
	}
}

// NewClient creates a new backend REST client
func NewClient(cfg config.BackendConfig, logger *zap.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:      logger,
		placeholder: DefaultPlaceholderImage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one backend call
type request struct {
	method   string
	path     string
	query    url.Values
	session  *session.Session
	body     any
	resource string // used for not-found errors

	rawBody     io.Reader
	contentType string
}

// errorBody is the error envelope the backend answers with
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// execute runs the request and returns the raw body of a 2xx answer
func (c *Client) execute(ctx context.Context, r request) ([]byte, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.rawBody != nil:
		body = r.rawBody
	case r.body != nil:
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.session != nil {
		if r.session.Token != "" {
			req.Header.Set("Authorization", "Bearer "+r.session.Token)
		}
		if r.session.CartKey != "" {
			req.Header.Set(cartKeyHeader, r.session.CartKey)
		}
	}

	op := r.method + " " + r.path
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	c.logger.Debug("Backend returned error status",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
	)
	return nil, statusError(resp.StatusCode, respBody, r.resource)
}

// do runs the request and decodes a JSON answer into out when out is non-nil
func (c *Client) do(ctx context.Context, r request, out any) error {
	body, err := c.execute(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// statusError converts a non-2xx backend answer into the error taxonomy
func statusError(status int, body []byte, resource string) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	message := eb.Message
	if message == "" {
		message = eb.Error
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &apperrors.ErrUnauthorized{Message: message}
	case status == http.StatusNotFound:
		if resource == "" {
			resource = "resource"
		}
		return &apperrors.ErrNotFound{Resource: resource}
	case status >= 400 && status < 500:
		if message == "" {
			message = http.StatusText(status)
		}
		return &apperrors.ErrValidation{Message: message}
	default:
		return &apperrors.ErrUpstream{Status: status, Body: truncate(string(body), 512)}
	}
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
