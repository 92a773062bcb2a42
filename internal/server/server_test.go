// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sentiscope/cli/internal/backend"
	apperrors "sentiscope/cli/internal/errors"
	"sentiscope/cli/internal/sentiment"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := New(DefaultFixtures(), zaptest.NewLogger(t))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "known query", body: `{"searchQuery":"climate change"}`, wantStatus: http.StatusOK, wantMsg: "ok"},
		{name: "case and space insensitive", body: `{"searchQuery":"  Climate Change "}`, wantStatus: http.StatusOK, wantMsg: "ok"},
		{name: "default fixture", body: `{"searchQuery":"anything else"}`, wantStatus: http.StatusOK, wantMsg: "Analysis complete."},
		{name: "empty query", body: `{"searchQuery":""}`, wantStatus: http.StatusBadRequest, wantMsg: "No search query provided."},
		{name: "missing field", body: `{}`, wantStatus: http.StatusBadRequest, wantMsg: "No search query provided."},
		{name: "not json", body: `nope`, wantStatus: http.StatusBadRequest, wantMsg: "No search query provided."},
		{name: "failing fixture", body: `{"searchQuery":"boom"}`, wantStatus: http.StatusInternalServerError, wantMsg: "Failed to fetch or process data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/variable", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decode(t, rec)["message"])
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestUnknownQueryWithoutDefault(t *testing.T) {
	s := New(Fixtures{}, nil)

	rec := do(t, s, http.MethodPost, "/api/variable", `{"searchQuery":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to fetch or process data", body["message"])
	assert.NotEmpty(t, body["error"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := New(DefaultFixtures(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestUsersEndpoint(t *testing.T) {
	rec := do(t, New(DefaultFixtures(), nil), http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"ada", "grace", "linus"}, decode(t, rec)["users"])

	rec = do(t, New(Fixtures{}, nil), http.MethodGet, "/api/users", "")
	assert.Equal(t, []any{}, decode(t, rec)["users"])
}

func TestParseFixtures(t *testing.T) {
	fx, err := ParseFixtures([]byte(`
queries:
  " Golang ":
    delay: 150ms
    status: 503
    response:
      message: down
`))
	require.NoError(t, err)

	f, ok := fx.Lookup("golang")
	require.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, f.Delay)
	assert.Equal(t, 503, f.Status)
	assert.Equal(t, "down", f.Response["message"])

	_, ok = fx.Lookup("rust")
	assert.False(t, ok)

	_, err = ParseFixtures([]byte("queries: [1, 2"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("queries:\n  x:\n    delay: -1s\n"))
	assert.Error(t, err)
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [one]\n"), 0o600))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, []any{"one"}, fx.Users)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// The stub speaks the same wire format the client expects.
func TestClientAgainstStub(t *testing.T) {
	srv := httptest.NewServer(New(DefaultFixtures(), nil).Handler())
	defer srv.Close()
	client := backend.New(srv.URL, backend.DefaultEndpoints())
	ctx := context.Background()

	q, err := sentiment.NewQuery("climate change")
	require.NoError(t, err)
	res, err := client.Analyze(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, sentiment.Aggregate{Total: 120, Positive: 55.5, Negative: 20.1, Neutral: 24.4}, res.Aggregate)

	q, _ = sentiment.NewQuery("partial")
	res, err = client.Analyze(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, sentiment.Aggregate{Total: 10, Positive: 70, Neutral: 30}, res.Aggregate)

	q, _ = sentiment.NewQuery("boom")
	_, err = client.Analyze(ctx, q)
	assert.Equal(t, apperrors.TransportFailure, apperrors.KindOf(err))

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestDelayHonorsClientCancel(t *testing.T) {
	fx := Fixtures{Queries: map[string]Fixture{"slow": {Delay: time.Minute, Response: map[string]any{"message": "late"}}}}
	srv := httptest.NewServer(New(fx, nil).Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	q, _ := sentiment.NewQuery("slow")
	_, err := backend.New(srv.URL, backend.Endpoints{}).Analyze(ctx, q)
	assert.Error(t, err)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(DefaultFixtures(), nil).ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/users")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
