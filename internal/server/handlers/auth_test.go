package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goalsync/internal/crypto"
	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/internal/server/storage"
	"github.com/iudanet/goalsync/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:         []byte("test-secret"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

func testHashParams() crypto.Params {
	return crypto.Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}
}

// memUsers хранилище пользователей поверх UserStorageMock
func memUsers() (*UserStorageMock, map[string]*models.User) {
	users := make(map[string]*models.User)
	m := &UserStorageMock{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			if _, exists := users[user.Username]; exists {
				return storage.ErrUserAlreadyExists
			}
			users[user.Username] = user
			return nil
		},
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			user, ok := users[username]
			if !ok {
				return nil, storage.ErrUserNotFound
			}
			return user, nil
		},
		GetUserByIDFunc: func(ctx context.Context, userID string) (*models.User, error) {
			for _, u := range users {
				if u.ID == userID {
					return u, nil
				}
			}
			return nil, storage.ErrUserNotFound
		},
		UpdateLastLoginFunc: func(ctx context.Context, userID string, lastLogin time.Time) error {
			return nil
		},
	}
	return m, users
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userStorage, users := memUsers()
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username: "testuser",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response api.RegisterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.UserID)

	stored, ok := users["testuser"]
	require.True(t, ok)
	assert.Equal(t, response.UserID, stored.ID)
	assert.NotEqual(t, "password123", stored.PasswordHash, "пароль не хранится в открытом виде")
	assert.NoError(t, crypto.VerifyPassword("password123", stored.PasswordHash))
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	userStorage, _ := memUsers()
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{invalid"))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, userStorage.CreateUserCalls())
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{name: "empty username", req: api.RegisterRequest{Password: "password123"}},
		{name: "bad username", req: api.RegisterRequest{Username: "a b", Password: "password123"}},
		{name: "short password", req: api.RegisterRequest{Username: "alice", Password: "short"}},
		{name: "empty password", req: api.RegisterRequest{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStorage, _ := memUsers()
			handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

			w := postJSON(t, handler.Register, "/api/v1/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeError(t, w).Message)
			assert.Empty(t, userStorage.CreateUserCalls())
		})
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	userStorage, _ := memUsers()
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

	req := api.RegisterRequest{Username: "alice", Password: "password123"}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/api/v1/auth/register", req).Code)

	w := postJSON(t, handler.Register, "/api/v1/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username already taken", decodeError(t, w).Message)
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	userStorage, _ := memUsers()
	userStorage.CreateUserFunc = func(ctx context.Context, user *models.User) error {
		return errors.New("disk full")
	}
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{Username: "alice", Password: "password123"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full", "внутренние ошибки не раскрываются")
}

func registerUser(t *testing.T, handler *AuthHandler, username, password string) {
	t.Helper()
	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{Username: username, Password: password})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userStorage, users := memUsers()
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())
	registerUser(t, handler, "alice", "password123")

	w := postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{Username: "alice", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, users["alice"].ID, resp.UserID)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, users["alice"].ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	require.Len(t, userStorage.UpdateLastLoginCalls(), 1)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "invalid json", body: "not an object", wantStatus: http.StatusBadRequest},
		{name: "empty fields", body: api.LoginRequest{}, wantStatus: http.StatusBadRequest},
		{name: "unknown user", body: api.LoginRequest{Username: "bob", Password: "password123"}, wantStatus: http.StatusUnauthorized},
		{name: "wrong password", body: api.LoginRequest{Username: "alice", Password: "password124"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStorage, _ := memUsers()
			handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())
			registerUser(t, handler, "alice", "password123")

			w := postJSON(t, handler.Login, "/api/v1/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, userStorage.UpdateLastLoginCalls())
		})
	}
}

func TestAuthHandler_Login_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	userStorage, _ := memUsers()
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())
	registerUser(t, handler, "alice", "password123")

	unknown := postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{Username: "bob", Password: "password123"})
	wrong := postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{Username: "alice", Password: "nope-nope-nope"})

	assert.Equal(t, decodeError(t, unknown), decodeError(t, wrong))
}

func TestAuthHandler_Login_UpdateLastLoginError(t *testing.T) {
	userStorage, _ := memUsers()
	userStorage.UpdateLastLoginFunc = func(ctx context.Context, userID string, lastLogin time.Time) error {
		return errors.New("db locked")
	}
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())
	registerUser(t, handler, "alice", "password123")

	w := postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{Username: "alice", Password: "password123"})
	assert.Equal(t, http.StatusOK, w.Code, "ошибка last_login не критична")
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	userStorage, _ := memUsers()
	userStorage.GetUserByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return nil, errors.New("connection reset")
	}
	handler := NewAuthHandler(setupTestLogger(), userStorage, testJWTConfig(), testHashParams())

	w := postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{Username: "alice", Password: "password123"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
