package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/kv"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "user123"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	srv *Server
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                 "test",
		Port:                "8000",
		APIVersion:          "v1",
		JWTSecret:           "test-secret-at-least-32-characters-long",
		JWTAccessTTLMinutes: 5,
		JWTRefreshTTLHours:  24,
		AllowedOrigins:      "http://localhost:5173",
		PageSize:            100,
		MaxPageSize:         1000,
	}
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	db := testutil.NewSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb, err := kv.Connect(t.Context(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	app, err := srv.App()
	require.NoError(t, err)
	return &testEnv{app: app, db: db, srv: srv}
}

// user inserts an account whose password is testPassword.
func (e *testEnv) user(t *testing.T, email string) *models.User {
	t.Helper()
	u := testutil.CreateUser(t, e.db, email)
	hash, err := service.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, e.db.Model(u).Update("password", hash).Error)
	return u
}

// login obtains an access token through the token endpoint.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/v1/token", map[string]string{
		"email": email, "password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(body, &pair))
	return pair.Access
}

func (e *testEnv) do(t *testing.T, method, path string, payload any, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(p)
	default:
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func keySet(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
