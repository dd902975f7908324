// Package api implements the authenticated HTTP gateway to the ticket
// service. All transport failures are normalized into *Error with a numeric
// status; a 401 on the first attempt triggers the registered refresh callback
// and exactly one retry of the original request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

// Response is the raw outcome of a successful request. Data is left as JSON
// for the typed endpoint methods to decode.
type Response struct {
	Data   json.RawMessage
	Status int
}

// RESTClient performs authenticated requests against the backend. The token
// accessor and refresh callback are injected after construction because the
// session store that provides them is itself built on top of this client.
type RESTClient struct {
	baseURL   string
	http      *http.Client
	tokenFn   func() string
	refreshFn func(ctx context.Context) bool
	log       logging.Logger
}

// New creates a RESTClient for the given base URL. The underlying http.Client
// carries a cookie jar so the refresh-token cookie set by the server on login
// is sent back on /refresh and /logout.
func New(baseURL string, timeout time.Duration, log logging.Logger) (*RESTClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &RESTClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

// SetTokenFunc registers the accessor used to resolve the current
// authorization header value. The value is attached verbatim.
func (c *RESTClient) SetTokenFunc(fn func() string) {
	c.tokenFn = fn
}

// SetRefreshFunc registers the callback invoked once when a request comes
// back 401. It reports whether re-authentication succeeded.
func (c *RESTClient) SetRefreshFunc(fn func(ctx context.Context) bool) {
	c.refreshFn = fn
}

// Request issues an authenticated request and retries it exactly once after
// a successful token refresh. Body, when non-nil, is sent as JSON.
func (c *RESTClient) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.request(ctx, method, path, body, true)
}

func (c *RESTClient) request(ctx context.Context, method, path string, body any, allowRetry bool) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	// One correlation id per logical request, kept across the retry.
	reqID := uuid.NewString()

	// Explicit attempt counter rather than recursion: the retry is bounded
	// to one even if refresh itself keeps reporting success.
	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, method, path, payload, reqID)
		if err != nil {
			return nil, &Error{Message: err.Error(), Status: 0}
		}

		if resp.Status == http.StatusUnauthorized && attempt == 0 && allowRetry && c.refreshFn != nil {
			c.log.Info(ctx, "access token rejected, attempting refresh", "path", path, "request_id", reqID)
			if c.refreshFn(ctx) {
				continue
			}
			return nil, &Error{Message: "authentication failed", Status: http.StatusUnauthorized}
		}

		if resp.Status < 200 || resp.Status > 299 {
			return nil, errorFromBody(resp)
		}
		return resp, nil
	}
}

func (c *RESTClient) send(ctx context.Context, method, path string, payload []byte, reqID string) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug(ctx, "request finished",
		"method", method, "path", path, "status", res.StatusCode,
		"duration", time.Since(start), "request_id", reqID)

	return &Response{Data: data, Status: res.StatusCode}, nil
}

// errorFromBody builds an *Error from a non-2xx response, preferring the
// server's {error|message} JSON over a generic status line.
func errorFromBody(resp *Response) *Error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Data, &body); err == nil {
		if body.Error != "" {
			return &Error{Message: body.Error, Status: resp.Status}
		}
		if body.Message != "" {
			return &Error{Message: body.Message, Status: resp.Status}
		}
	}
	return httpError(resp.Status)
}

func decodeInto(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
