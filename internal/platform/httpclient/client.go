// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package httpclient is the single choke point for outbound calls to the FFL
backend.

Every service client goes through [Client.Do], which:

  - attaches the bearer credential when one is persisted,
  - fails fast on locally-expired credentials without a network round trip,
  - classifies failures into the [apperr] taxonomy, and
  - on a 401 from a protected endpoint, tears the session down through an
    injected hook.

The hook keeps the dependency graph layered: this package never imports the
session manager; the composition root wires the two together.
*/
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/credential"
	"github.com/fantasyfightleague/fflcli/internal/platform/ctxutil"
	"github.com/fantasyfightleague/fflcli/internal/platform/token"
)

// OnUnauthorized is invoked when a protected call comes back 401 or a
// locally-expired credential is detected. It receives the path that was
// being requested so the login view can return there afterwards.
type OnUnauthorized func(attemptedPath string)

// Options configures a [Client].
type Options struct {
	// BaseURL is the backend base path including the /api prefix.
	BaseURL string

	// Timeout bounds each request end to end.
	Timeout time.Duration

	// Credentials is the persisted bearer token store.
	Credentials credential.Store

	// OnUnauthorized is the session-teardown hook. Optional; when nil the
	// client still clears the credential and classifies the error.
	OnUnauthorized OnUnauthorized

	// RequestsPerSecond throttles outbound calls. Zero means the default
	// of 10 req/s with a burst of 5.
	RequestsPerSecond float64

	Logger *slog.Logger
}

// Client wraps outbound requests to the FFL backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	credentials    credential.Store
	onUnauthorized OnUnauthorized
	limiter        *rate.Limiter
	log            *slog.Logger
}

// New constructs a [Client] from options.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		credentials:    opts.Credentials,
		onUnauthorized: opts.OnUnauthorized,
		limiter:        rate.NewLimiter(rate.Limit(rps), 5),
		log:            log,
	}
}

// serverMessage is the backend's error envelope: {"message": "..."}.
type serverMessage struct {
	Message string `json:"message"`
}

// isAuthPath reports whether path belongs to the auth endpoints. A 401 from
// these means "credentials wrong", never "session expired": signing in with
// a bad password must not tear down an existing session.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

/*
Do performs one call against the backend and decodes the JSON response into
out (ignored when out is nil).

Description: The full outbound pipeline: rate limit, local expiry check,
bearer attach, send, classify.

Parameters:
  - ctx: context.Context
  - method: HTTP verb
  - path: endpoint path relative to the base URL (leading slash)
  - body: request payload, JSON-marshalled when non-nil
  - out: response target, JSON-unmarshalled when non-nil

Returns:
  - error: an [*apperr.AppError] for every failure mode
*/
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {

	// ── 1. Outbound throttle ─────────────────────────────────────────────
	if err := c.limiter.Wait(ctx); err != nil {
		return apperr.Network(err)
	}

	// ── 2. Credential attach + local expiry fast fail ────────────────────
	// Auth endpoints are exempt from the fast fail: an expired credential
	// must never block a fresh sign-in.
	bearer, err := c.credentials.Load(ctx)
	if err != nil && !errors.Is(err, credential.ErrNoCredential) {
		return apperr.Network(err)
	}

	if bearer != "" && !isAuthPath(path) && token.IsExpired(bearer) {
		c.log.Info("credential_locally_expired", slog.String("path", path))
		c.teardown(ctx, path)
		return apperr.SessionExpired()
	}

	// ── 3. Build the request ─────────────────────────────────────────────
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperr.Server(0, fmt.Sprintf("could not encode request: %v", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return apperr.Server(0, fmt.Sprintf("could not build request: %v", err))
	}

	// One correlation ID per invocation when the caller seeded one, fresh
	// per request otherwise.
	requestID := ctxutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.log.Debug("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	// ── 4. Send ──────────────────────────────────────────────────────────
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failure: DNS, refused connection, timeout. The
		// server's verdict is unknown, so session state stays untouched.
		c.log.Warn("http_transport_failure", slog.String("path", path), slog.Any("error", err))
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Network(err)
	}

	c.log.Debug("http_response", slog.String("path", path), slog.Int("status", resp.StatusCode))

	// ── 5. Classify ──────────────────────────────────────────────────────
	if resp.StatusCode == http.StatusUnauthorized {
		return c.classifyUnauthorized(ctx, path, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyFailure(resp, respBody)
	}

	// ── 6. Decode ────────────────────────────────────────────────────────
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperr.Server(resp.StatusCode, fmt.Sprintf("could not decode response: %v", err))
		}
	}

	return nil
}

// classifyUnauthorized applies the 401 asymmetry: auth endpoints surface a
// plain credential error; everything else is a dead session.
func (c *Client) classifyUnauthorized(ctx context.Context, path string, body []byte) error {
	if isAuthPath(path) {
		msg := decodeMessage(body)
		if msg == "" {
			msg = "Invalid credentials"
		}
		return apperr.Unauthorized(msg)
	}

	c.log.Info("session_rejected_by_server", slog.String("path", path))
	c.teardown(ctx, path)
	return apperr.SessionExpired()
}

// teardown clears the persisted credential and hands session/navigation
// cleanup to the injected hook. This is the only place the HTTP layer is
// allowed to mutate session state as a side effect of a failure.
func (c *Client) teardown(ctx context.Context, attemptedPath string) {
	if err := c.credentials.Clear(ctx); err != nil {
		c.log.Warn("credential_clear_failed", slog.Any("error", err))
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(attemptedPath)
	}
}

// classifyFailure maps non-401 error statuses onto the taxonomy, preferring
// the server-provided message over the generic "status: reason" fallback.
func classifyFailure(resp *http.Response, body []byte) error {
	msg := decodeMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("%d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &apperr.AppError{Code: apperr.CodeNotFound, Message: msg}
	case resp.StatusCode == http.StatusConflict:
		return apperr.Conflict(msg)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return apperr.Validation(msg)
	default:
		return apperr.Server(resp.StatusCode, msg)
	}
}

// decodeMessage extracts the backend's {"message": ...} envelope, returning
// empty on any other shape.
func decodeMessage(body []byte) string {
	var envelope serverMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// # Verb Helpers

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}
