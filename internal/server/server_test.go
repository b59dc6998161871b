package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sakif/qa-backend/internal/config"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		LogLevel: "debug",
		HTTP: config.HTTPConfig{
			Addr:            "127.0.0.1:0",
			ShutdownTimeout: time.Second,
			AllowedOrigins:  []string{"https://qa.example.com"},
		},
		DB: config.DBConfig{
			Driver:       config.DriverSQLite,
			URL:          filepath.Join(t.TempDir(), "nested", "qa.db"),
			MaxOpenConns: 4,
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(context.Background(), testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = serve(s, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_EndToEnd(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodPost, "/users/alice", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(s, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"title":"t","body":"b","user_name":"alice"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(s, httptest.NewRequest(http.MethodDelete, "/users/alice", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"removed":2`)

	rr = serve(s, httptest.NewRequest(http.MethodGet, "/questions", nil))
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/snippets", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"Route not found"}`, rr.Body.String())
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "https://qa.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr := serve(s, req)
	assert.Equal(t, "https://qa.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = serve(s, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	s, err := New(context.Background(), testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
