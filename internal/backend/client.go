// Package backend is the client for the hosted backend-as-a-service the
// storefront runs against. Every call is a plain CRUD request against a
// remote table or the auth endpoint; responses arrive in a uniform
// {data, error} envelope where error is a string or null, never a panic
// across the boundary.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// maxResponseBody bounds how much of a response body is read.
const maxResponseBody = 1 << 20 // 1 MB

// Doer is the interface for executing HTTP requests. Both httpclient.Client
// and httpclient.CircuitBreakerClient satisfy this.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// envelope is the {data, error} response shape the backend returns.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

// Client issues requests against the backend REST API.
type Client struct {
	baseURL     string
	apiKey      string
	http        Doer
	logger      *slog.Logger
	tokenSource func() string
}

// NewClient creates a backend client. baseURL must not have a trailing
// slash; apiKey is sent on every request.
func NewClient(baseURL, apiKey string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    doer,
		logger:  logger,
	}
}

// SetTokenSource installs a callback that supplies the current session's
// access token. An empty return means no authenticated session.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// get issues a GET request and decodes the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body and decodes the envelope's
// data into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// patch issues a PATCH request with a JSON body and decodes the envelope's
// data into out.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return mapStatusError(resp.StatusCode, string(raw), path)
			}
			return fmt.Errorf("decode backend response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		msg := string(raw)
		if env.Error != nil {
			msg = *env.Error
		}
		return mapStatusError(resp.StatusCode, msg, path)
	}

	if env.Error != nil && *env.Error != "" {
		return apperrors.Wrap(apperrors.ErrInternal, *env.Error)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode backend data: %w", err)
		}
	}
	return nil
}

// mapStatusError translates a backend HTTP status and message into an
// AppError preserving the error semantics.
func mapStatusError(status int, message, path string) error {
	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound("backend resource", path)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(message)
	case status >= 500:
		return fmt.Errorf("backend server error (%d): %s", status, message)
	default:
		return &apperrors.AppError{
			Code:    "BACKEND_ERROR",
			Message: message,
			Status:  status,
		}
	}
}
