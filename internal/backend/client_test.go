package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDoer() Doer {
	return httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 10,
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-api-key", testDoer(), testLogger())
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": nil, "error": msg})
}

func TestClient_SendsAPIKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		writeData(w, http.StatusOK, map[string]string{})
	})

	var out map[string]string
	require.NoError(t, c.get(context.Background(), "/anything", nil, &out))
}

func TestClient_SendsBearerTokenWhenPresent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, nil)
	})
	c.SetTokenSource(func() string { return "tok-123" })

	require.NoError(t, c.get(context.Background(), "/anything", nil, nil))
}

func TestClient_NoBearerTokenWhenSignedOut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, nil)
	})
	c.SetTokenSource(func() string { return "" })

	require.NoError(t, c.get(context.Background(), "/anything", nil, nil))
}

func TestClient_MapsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such product")
	})

	err := c.get(context.Background(), "/products/ghost", nil, nil)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestClient_MapsBadRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "limit must be positive")
	})

	err := c.get(context.Background(), "/products", nil, nil)
	require.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit must be positive")
}

func TestClient_MapsUnauthorizedAndForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/needs-auth":
			writeError(w, http.StatusUnauthorized, "sign in first")
		default:
			writeError(w, http.StatusForbidden, "admins only")
		}
	})

	assert.ErrorIs(t, c.get(context.Background(), "/needs-auth", nil, nil), errors.ErrUnauthorized)
	assert.ErrorIs(t, c.get(context.Background(), "/admin/orders", nil, nil), errors.ErrForbidden)
}

func TestClient_EnvelopeErrorWithOKStatus(t *testing.T) {
	// The backend reports failures as {data:null, error:"..."} even on 200.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusOK, "replica lagging")
	})

	err := c.get(context.Background(), "/products", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replica lagging")
}

func TestClient_UnstructuredErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("plain text failure"))
	})

	err := c.get(context.Background(), "/products", nil, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestClient_NullDataLeavesOutUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, nil)
	})

	out := map[string]string{"pre": "existing"}
	require.NoError(t, c.get(context.Background(), "/products", nil, &out))
	assert.Equal(t, "existing", out["pre"])
}
