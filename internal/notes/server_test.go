package notes_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/config"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Redis: config.RedisConfig{
			KeyPrefix:      "notes:",
			ConnectTimeout: time.Second,
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			DefaultTTL:     time.Minute,
		},
	}
}

func request(t *testing.T, srv *notes.Server, method, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServerWithoutRedis(t *testing.T) {
	ctx := context.Background()

	srv, err := notes.NewServer(ctx, testConfig(), nil, services.NewSystemClock())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, request(t, srv, http.MethodGet, "/notes", "").StatusCode)
	assert.Equal(t, http.StatusCreated,
		request(t, srv, http.MethodPost, "/note", `{"title":"a","content":"b"}`).StatusCode)
	assert.Equal(t, http.StatusOK, request(t, srv, http.MethodGet, "/notes", "").StatusCode)

	_ = srv.Shutdown(ctx)
}

func TestServerWithRedisCache(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	host, portStr, _ := strings.Cut(mr.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Host = host
	cfg.Redis.Port = port

	srv, err := notes.NewServer(ctx, cfg, nil, services.NewSystemClock())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(ctx) })

	require.Equal(t, http.StatusCreated,
		request(t, srv, http.MethodPost, "/note", `{"title":"a","content":"b"}`).StatusCode)

	require.Equal(t, http.StatusOK, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)
	assert.True(t, mr.Exists("notes:1"), "read populates the cache")

	require.Equal(t, http.StatusNoContent,
		request(t, srv, http.MethodPut, "/note/1", `{"title":"c"}`).StatusCode)
	assert.False(t, mr.Exists("notes:1"), "update invalidates the cache")

	require.Equal(t, http.StatusOK, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)
	require.Equal(t, http.StatusNoContent, request(t, srv, http.MethodDelete, "/note/1", "").StatusCode)
	assert.False(t, mr.Exists("notes:1"), "delete invalidates the cache")
	assert.Equal(t, http.StatusNotFound, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)
}

func newCachedServer(t *testing.T) (*notes.Server, *miniredis.Miniredis) {
	t.Helper()
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	host, portStr, _ := strings.Cut(mr.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Host = host
	cfg.Redis.Port = port

	srv, err := notes.NewServer(ctx, cfg, nil, services.NewSystemClock())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(ctx) })
	return srv, mr
}

func TestServerCacheFailureDuringMutation(t *testing.T) {
	t.Run("delete", func(t *testing.T) {
		srv, mr := newCachedServer(t)

		require.Equal(t, http.StatusCreated,
			request(t, srv, http.MethodPost, "/note", `{"title":"Groceries","content":"Milk"}`).StatusCode)
		require.Equal(t, http.StatusOK, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)
		require.True(t, mr.Exists("notes:1"))

		mr.SetError("ERR injected failure")
		require.Equal(t, http.StatusNoContent, request(t, srv, http.MethodDelete, "/note/1", "").StatusCode)
		mr.SetError("")

		assert.Equal(t, http.StatusNotFound, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)
		assert.False(t, mr.Exists("notes:1"))
	})

	t.Run("update", func(t *testing.T) {
		srv, mr := newCachedServer(t)

		require.Equal(t, http.StatusCreated,
			request(t, srv, http.MethodPost, "/note", `{"title":"Groceries","content":"Milk"}`).StatusCode)
		require.Equal(t, http.StatusOK, request(t, srv, http.MethodGet, "/note/1", "").StatusCode)

		mr.SetError("ERR injected failure")
		require.Equal(t, http.StatusNoContent,
			request(t, srv, http.MethodPut, "/note/1", `{"content":"Milk,eggs"}`).StatusCode)
		mr.SetError("")

		resp := request(t, srv, http.MethodGet, "/note/1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"content":"Milk,eggs"`)
	})
}

func TestServerRedisUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1
	cfg.Redis.ConnectTimeout = 200 * time.Millisecond

	srv, err := notes.NewServer(context.Background(), cfg, nil, services.NewSystemClock())
	require.Error(t, err)
	assert.Nil(t, srv)
	assert.ErrorContains(t, err, notes.ErrCreateCache)
}
