// Package api is the typed client for the FitTrack remote API. It owns the
// endpoint paths, the bearer-token attachment, and the translation of error
// responses into the shared error types; callers never touch raw HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
	apperrors "github.com/neetharmaliackal/fittrack-pro-02/pkg/errors"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/httpclient"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/logger"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/validator"
)

// TokenSource yields the current access token. It is consulted on every
// authenticated call rather than captured at construction, so a login that
// happens mid-session is reflected in the very next request.
type TokenSource func() (string, bool)

// Client is the typed FitTrack API client.
type Client struct {
	baseURL string
	http    *httpclient.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a Client against the given base URL. tokens may be nil for a
// client that only performs unauthenticated calls.
func New(baseURL string, hc *httpclient.Client, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		tokens:  tokens,
		logger:  log,
	}
}

// Endpoint paths under the base URL.
const (
	pathRegister       = "/auth/register/"
	pathLogin          = "/auth/login/"
	pathActivities     = "/activities/"
	pathActivityCreate = "/activities/create/"
)

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func activityPath(id int64) string {
	return fmt.Sprintf("/activities/%d/", id)
}

// Register creates a new account. It does not authenticate; a successful
// registration is followed by an explicit login.
func (c *Client) Register(ctx context.Context, payload domain.RegisterPayload) error {
	if err := validator.Validate(payload); err != nil {
		return apperrors.Wrap(err, "invalid registration payload")
	}

	resp, err := c.send(ctx, http.MethodPost, pathRegister, payload, false)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "Registration failed")
	}
	// The success body is implementation-defined and ignored.
	httpclient.DrainAndClose(resp)
	return nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, payload domain.LoginPayload) (domain.AuthTokens, error) {
	resp, err := c.send(ctx, http.MethodPost, pathLogin, payload, false)
	if err != nil {
		return domain.AuthTokens{}, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AuthTokens{}, httpclient.ParseResponseError(resp, "Login failed")
	}

	var tokens domain.AuthTokens
	if err := decodeBody(resp, &tokens); err != nil {
		return domain.AuthTokens{}, fmt.Errorf("login: %w", err)
	}
	return tokens, nil
}

// ListActivities fetches the authenticated user's full activity list.
//
// The backend has shipped two success shapes for this endpoint: a bare JSON
// array, and a paginated envelope. The bare array is canonical; the envelope
// is accepted and unwrapped so the client keeps working against either.
func (c *Client) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	resp, err := c.send(ctx, http.MethodGet, pathActivities, nil, true)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "Failed to load activities")
	}

	activities, err := decodeActivityList(resp)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// CreateActivity creates a new activity and returns the server's record.
func (c *Client) CreateActivity(ctx context.Context, payload domain.ActivityPayload) (domain.Activity, error) {
	if err := validator.Validate(payload); err != nil {
		return domain.Activity{}, apperrors.Wrap(err, "invalid activity payload")
	}

	resp, err := c.send(ctx, http.MethodPost, pathActivityCreate, payload, true)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Activity{}, httpclient.ParseResponseError(resp, "Failed to create activity")
	}

	var created domain.Activity
	if err := decodeBody(resp, &created); err != nil {
		return domain.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return created, nil
}

// UpdateActivity replaces an existing activity's editable fields.
func (c *Client) UpdateActivity(ctx context.Context, id int64, payload domain.ActivityPayload) (domain.Activity, error) {
	if err := validator.Validate(payload); err != nil {
		return domain.Activity{}, apperrors.Wrap(err, "invalid activity payload")
	}

	resp, err := c.send(ctx, http.MethodPut, activityPath(id), payload, true)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("update activity: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Activity{}, httpclient.ParseResponseError(resp, "Failed to update activity")
	}

	var updated domain.Activity
	if err := decodeBody(resp, &updated); err != nil {
		return domain.Activity{}, fmt.Errorf("update activity: %w", err)
	}
	return updated, nil
}

// DeleteActivity removes an activity by id.
func (c *Client) DeleteActivity(ctx context.Context, id int64) error {
	resp, err := c.send(ctx, http.MethodDelete, activityPath(id), nil, true)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, "Failed to delete activity")
	}
	httpclient.DrainAndClose(resp)
	return nil
}

// send builds and executes one request. The bearer token is read from the
// TokenSource at call time when authed is set; an absent token still sends
// the request and lets the server answer 401, which callers treat as the
// session-invalid signal.
func (c *Client) send(ctx context.Context, method, path string, body any, authed bool) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	// One correlation ID per call, shared between the log line and the
	// X-Request-ID header the transport forwards.
	ctx = logger.WithCorrelationID(ctx, uuid.NewString())

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set(httpclient.RequestIDHeader, logger.CorrelationIDFromContext(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if access, ok := c.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	logger.WithContext(ctx, c.logger).Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
	)

	return c.http.Do(ctx, req)
}

func decodeBody(resp *http.Response, dst any) error {
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
