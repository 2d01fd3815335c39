package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goalsync/internal/crypto"
	"github.com/iudanet/goalsync/internal/server/handlers"
	"github.com/iudanet/goalsync/internal/server/middleware"
	"github.com/iudanet/goalsync/internal/server/storage/sqlite"
	"github.com/iudanet/goalsync/pkg/api"
)

func testConfig() Config {
	return Config{
		Addr:        "127.0.0.1:0",
		Version:     "test",
		CORSOrigins: []string{"https://app.example.com"},
		JWT: handlers.JWTConfig{
			Secret:         []byte("test-secret-key-for-router-tests-32b"),
			AccessTokenTTL: time.Hour,
		},
		// Дешевые параметры argon2id, чтобы тесты были быстрыми
		HashParams:      crypto.Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32},
		AuthRateLimit:   100,
		AuthRateWindow:  time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}
}

func setupRouter(t *testing.T, cfg Config) http.Handler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	t.Cleanup(limiter.Stop)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(cfg, store, limiter, logger)
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()

	creds := api.RegisterRequest{Username: "alice", Password: "correct-horse"}
	w := do(t, h, http.MethodPost, "/api/v1/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest(creds))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func TestRouter_Health(t *testing.T) {
	h := setupRouter(t, testConfig())

	w := do(t, h, http.MethodGet, HealthPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := setupRouter(t, testConfig())

	w := do(t, h, http.MethodGet, "/api/v1/sync", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_SyncRequiresAuth(t *testing.T) {
	h := setupRouter(t, testConfig())

	w := do(t, h, http.MethodPost, "/api/v1/sync", "", api.SyncRequest{DeviceID: "d1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SyncRoundTrip(t *testing.T) {
	h := setupRouter(t, testConfig())
	token := login(t, h)

	req := api.SyncRequest{
		DeviceID: "device-1",
		Changes: map[api.EntityType][]api.QueueItem{
			api.EntityGoals: {{
				ID:        "g1",
				Operation: api.OpCreate,
				Payload:   api.Entity{ID: "g1", Data: json.RawMessage(`{"title":"Run"}`)},
			}},
		},
	}

	w := do(t, h, http.MethodPost, "/api/v1/sync", token, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Positive(t, resp.LastSyncAt)
	require.Len(t, resp.Changes[api.EntityGoals], 1)

	e, ok := resp.Changes[api.EntityGoals][0].Entity()
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Version)

	// Устаревшая версия: 409 с конфликтом, watermark не сдвигается
	req.LastSyncAt = resp.LastSyncAt
	req.Changes[api.EntityGoals][0].Operation = api.OpUpdate

	w = do(t, h, http.MethodPost, "/api/v1/sync", token, req)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var conflictResp api.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflictResp))
	assert.False(t, conflictResp.Success)
	assert.Equal(t, 1, conflictResp.ConflictCount())
	assert.Equal(t, resp.LastSyncAt, conflictResp.LastSyncAt)
}

func TestRouter_GzipRequestAndResponse(t *testing.T) {
	h := setupRouter(t, testConfig())
	token := login(t, h)

	items := make([]api.QueueItem, 0, 200)
	for i := 0; i < 200; i++ {
		id := "goal-" + strings.Repeat("x", 8) + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		items = append(items, api.QueueItem{
			ID:        id,
			Operation: api.OpCreate,
			Payload:   api.Entity{ID: id, Data: json.RawMessage(`{"title":"` + strings.Repeat("long title ", 10) + `"}`)},
		})
	}
	data, err := json.Marshal(api.SyncRequest{DeviceID: "d1", Changes: map[api.EntityType][]api.QueueItem{api.EntityGoals: items}})
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)

	var resp api.SyncResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 200, resp.ChangeCount())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := setupRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sync", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	// Чужой origin не получает разрешение
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_AuthRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 2
	h := setupRouter(t, cfg)

	creds := api.LoginRequest{Username: "nobody", Password: "whatever-pass"}
	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodPost, "/api/v1/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := do(t, h, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Health не ограничивается
	w = do(t, h, http.MethodGet, HealthPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	srv := New(testConfig(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + HealthPath)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
