// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "newsdesk/cli/internal/errors"
	"newsdesk/cli/internal/logging"
)

// AdminPrefix marks paths that need the bearer token.
const AdminPrefix = "/admin"

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// TokenStore is the part of the session store the client needs.
type TokenStore interface {
	Token() (string, bool, error)
	ClearSession() error
}

// Client implements API over the portal's REST endpoints.
// Every call goes through do, which attaches the token on admin paths,
// classifies the response, clears the session on an admin 401 and notifies
// subscribers before returning.
type Client struct {
	// baseURL is the portal origin plus any path prefix, without a trailing slash
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	store  TokenStore
	log    zerolog.Logger
	subs   subscribers
	// newRequestID generates the X-Request-ID header value
	newRequestID func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for baseURL reading the token from store.
// It configures a 15-second timeout unless overridden.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 15 * time.Second},
		store:        store,
		log:          zerolog.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured portal URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Subscribe registers fn for every exchange event and returns a function that
// removes it.
func (c *Client) Subscribe(fn Subscriber) (unsubscribe func()) {
	return c.subs.add(fn)
}

// IsAdminPath reports whether path needs the bearer token.
func IsAdminPath(path string) bool {
	return strings.HasPrefix(path, AdminPrefix)
}

// do performs one exchange. query may be nil. When out is non-nil and the
// response has a body, it is decoded into out. The response headers are
// returned on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	reqID := c.newRequestID()
	start := time.Now()

	finish := func(outcome Outcome, status int, err error) {
		ev := Event{Outcome: outcome, Method: method, Path: path, Status: status, RequestID: reqID, Err: err}
		c.logExchange(ev, time.Since(start))
		c.subs.emit(ev)
	}

	req, err := c.newRequest(ctx, method, path, query, body, reqID)
	if err != nil {
		finish(OutcomeOther, 0, err)
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		err = apperrors.Wrap(apperrors.RequestFailed, method+" "+path, err)
		finish(OutcomeOther, 0, err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		err = &apperrors.E{Kind: apperrors.RequestFailed, Message: "read response of " + method + " " + path, Status: resp.StatusCode, Err: err}
		finish(OutcomeOther, resp.StatusCode, err)
		return nil, err
	}

	if outcome, failure := c.classify(method, path, resp.StatusCode, data); failure != nil {
		if outcome == OutcomeAuthExpired {
			if cerr := c.store.ClearSession(); cerr != nil {
				c.log.Warn().Err(cerr).Msg("clear session after 401")
			}
		}
		finish(outcome, resp.StatusCode, failure)
		return nil, failure
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			err = &apperrors.E{Kind: apperrors.RequestFailed, Message: "decode response of " + method + " " + path, Status: resp.StatusCode, Err: err}
			finish(OutcomeOther, resp.StatusCode, err)
			return nil, err
		}
	}

	finish(OutcomeOK, resp.StatusCode, nil)
	return resp.Header, nil
}

// newRequest builds the request and runs request interception. A session
// store failure on an admin path aborts the call before anything is sent.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, reqID string) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.RequestFailed, "encode request body", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.RequestFailed, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if IsAdminPath(path) {
		token, ok, err := c.store.Token()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.StorageFailed, "read session token", err)
		}
		if ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// classify maps a status to an outcome and, for failures, the error handed to the caller.
func (c *Client) classify(method, path string, status int, body []byte) (Outcome, error) {
	switch {
	case status >= 200 && status < 300:
		return OutcomeOK, nil
	case status == http.StatusUnauthorized && IsAdminPath(path):
		return OutcomeAuthExpired, apperrors.HTTP(apperrors.AuthExpired, status, "session expired")
	case status >= 500:
		return OutcomeServerFault, apperrors.HTTP(apperrors.ServerFault, status, describe(method, path, status, body))
	default:
		return OutcomeOther, apperrors.HTTP(apperrors.RequestFailed, status, describe(method, path, status, body))
	}
}

// describe builds a short message from an error response, preferring the
// API's own "error" or "message" field.
func describe(method, path string, status int, body []byte) string {
	detail := ""
	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		for _, k := range []string{"error", "message"} {
			if s, ok := payload[k].(string); ok && s != "" {
				detail = s
				break
			}
		}
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	if len(detail) > 200 {
		detail = detail[:200] + "..."
	}
	msg := fmt.Sprintf("%s %s: %d %s", method, path, status, http.StatusText(status))
	if detail != "" {
		msg += ": " + logging.Mask(detail)
	}
	return msg
}

func (c *Client) logExchange(ev Event, took time.Duration) {
	var e *zerolog.Event
	switch ev.Outcome {
	case OutcomeOK:
		e = c.log.Debug()
	case OutcomeServerFault:
		e = c.log.Error()
	default:
		e = c.log.Warn()
	}
	e = e.Str("method", ev.Method).
		Str("path", ev.Path).
		Int("status", ev.Status).
		Str("outcome", ev.Outcome.String()).
		Str("request_id", ev.RequestID).
		Dur("took", took)
	if ev.Err != nil {
		e = e.Str("error", logging.Mask(ev.Err.Error()))
	}
	e.Msg("api call")
}
