package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hiredvalley/hired-backend/internal/config"
	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	authsvc "github.com/hiredvalley/hired-backend/internal/http/services/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type harness struct {
	srv *httptest.Server
	mem *memory.Platform
}

func newHarness(t *testing.T, env map[string]string) *harness {
	t.Helper()
	return newHarnessWith(t, env, nil)
}

// newHarnessWith usa p como platform; nil usa el platform en memoria.
func newHarnessWith(t *testing.T, env map[string]string, p authsvc.Platform) *harness {
	t.Helper()
	t.Cleanup(logger.Replace(zap.NewNop()))

	t.Setenv("PLATFORM_DRIVER", "memory")
	t.Setenv("MEMORY_JWT_SECRET", testSecret)
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load("")
	require.NoError(t, err)

	mem, err := memory.New(memory.Config{Secret: []byte(testSecret), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics, err := platform.NewMetrics(reg)
	require.NoError(t, err)

	opts := Options{
		Registry: reg,
		Platform: platform.New(mem, mem, platform.WithMetrics(metrics)),
	}
	if p != nil {
		opts.Platform = p
	}
	h, cleanup, err := BuildHandler(context.Background(), cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &harness{srv: srv, mem: mem}
}

func (h *harness) do(t *testing.T, method, path, body string, hdr map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := h.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

const signupBody = `{"email":"a@x.com","password":"p","first_name":"A","role":"candidate"}`

func TestSignup_ThenDuplicate(t *testing.T) {
	h := newHarness(t, nil)

	resp, body := h.do(t, http.MethodPost, "/api/v1/auth/signup", signupBody, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])
	uid, _ := body["auth_uid"].(string)
	assert.NotEmpty(t, uid)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	resp, body = h.do(t, http.MethodPost, "/api/v1/auth/signup", signupBody, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "This email is already registered. Please sign in."}, body)

	// El perfil quedó con last_name vacío
	resp, body = h.do(t, http.MethodGet, "/api/v1/auth/profile/"+uid, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uid, body["auth_uid"])
	assert.Equal(t, "A", body["first_name"])
	assert.Equal(t, "", body["last_name"])
	assert.Equal(t, "candidate", body["role"])
}

func TestSignup_BadRequests(t *testing.T) {
	h := newHarness(t, nil)

	cases := []struct {
		name, body, want string
	}{
		{"missing role", `{"email":"a@x.com","password":"p","first_name":"A"}`, "All fields are required"},
		{"empty object", `{}`, "All fields are required"},
		{"bad role", `{"email":"a@x.com","password":"p","first_name":"A","role":"admin"}`, "Role must be candidate or recruiter"},
		{"invalid json", `{"email":`, "Invalid JSON body"},
		{"trailing data", `{} {}`, "Invalid JSON body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := h.do(t, http.MethodPost, "/api/v1/auth/signup", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": tc.want}, body)
		})
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t, nil)
	_, created := h.do(t, http.MethodPost, "/api/v1/auth/signup",
		`{"email":"Bo@X.com","password":"secret","first_name":"Bo","last_name":"Li","role":"Recruiter"}`, nil)

	t.Run("success", func(t *testing.T) {
		resp, body := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"bo@x.com","password":"secret"}`, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Login successful", body["message"])
		assert.NotEmpty(t, body["access_token"])
		assert.Equal(t, map[string]any{
			"auth_uid":   created["auth_uid"],
			"first_name": "Bo",
			"last_name":  "Li",
			"role":       "recruiter",
			"email":      "bo@x.com",
		}, body["user"])
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		r1, b1 := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"bo@x.com","password":"nope"}`, nil)
		r2, b2 := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"ghost@x.com","password":"nope"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, r1.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, r2.StatusCode)
		assert.Equal(t, map[string]any{"error": "Invalid email or password"}, b1)
		assert.Equal(t, b1, b2)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, body := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"bo@x.com"}`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, map[string]any{"error": "Email and password required"}, body)
	})

	t.Run("identity without profile", func(t *testing.T) {
		_, err := h.mem.CreateIdentity(context.Background(), "orphan@x.com", "pw")
		require.NoError(t, err)

		resp, body := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"orphan@x.com","password":"pw"}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, map[string]any{"error": "User not found in public.users"}, body)
	})
}

func TestProtected(t *testing.T) {
	h := newHarness(t, nil)
	h.do(t, http.MethodPost, "/api/v1/auth/signup", signupBody, nil)
	_, login := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"p"}`, nil)
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)
	uid := login["user"].(map[string]any)["auth_uid"].(string)

	resp, body := h.do(t, http.MethodGet, "/api/v1/auth/protected", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Missing token"}, body)

	resp, body = h.do(t, http.MethodGet, "/api/v1/auth/protected", "", map[string]string{"Authorization": "Bearer"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Invalid token"}, body)

	resp, _ = h.do(t, http.MethodGet, "/api/v1/auth/protected", "", map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = h.do(t, http.MethodGet, "/api/v1/auth/protected", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"message": "Token is valid", "user_id": uid, "email": "a@x.com"}, body)

	// Token válido pero la identidad ya no existe
	require.True(t, h.mem.DeleteIdentity(uid))
	resp, body = h.do(t, http.MethodGet, "/api/v1/auth/protected", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Invalid token"}, body)
}

func TestProfile_NotFound(t *testing.T) {
	h := newHarness(t, nil)
	resp, body := h.do(t, http.MethodGet, "/api/v1/auth/profile/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "User not found"}, body)
}

func TestHealthAndOps(t *testing.T) {
	h := newHarness(t, nil)

	resp, body := h.do(t, http.MethodGet, "/api/v1/auth/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"status": "Auth routes are working"}, body)

	resp, body = h.do(t, http.MethodGet, "/readyz", "", map[string]string{"X-Request-ID": "rid-123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "rid-123", resp.Header.Get("X-Request-ID"))

	resp, body = h.do(t, http.MethodGet, "/api/v1/auth/signup", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Method not allowed"}, body)

	resp, _ = h.do(t, http.MethodGet, "/api/v1/auth/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err := h.srv.Client().Get(h.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `http_requests_total{method="GET",route="/api/v1/auth/health",status="200"}`)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t, map[string]string{"RATE_ENABLED": "true", "RATE_LIMIT": "2", "RATE_WINDOW": "1h"})

	for i := 0; i < 2; i++ {
		resp, _ := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"p"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"p"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Too many requests"}, body)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Otras rutas no consumen el cupo
	resp, _ = h.do(t, http.MethodGet, "/api/v1/auth/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// brokenPlatform falla todo con un error no clasificado del upstream.
type brokenPlatform struct{ detail string }

func (b brokenPlatform) fail(op string) error { return platform.Internal(op, errors.New(b.detail)) }

func (b brokenPlatform) CreateIdentity(context.Context, string, string) (*repository.SignUpResult, error) {
	return nil, b.fail("signup")
}

func (b brokenPlatform) Authenticate(context.Context, string, string) (*repository.AuthResult, error) {
	return nil, b.fail("token")
}

func (b brokenPlatform) VerifyToken(context.Context, string) (*repository.Identity, error) {
	return nil, b.fail("user")
}

func (b brokenPlatform) Exists(context.Context, string) (bool, error) { return false, b.fail("exists") }

func (b brokenPlatform) Insert(context.Context, repository.Profile) error { return b.fail("insert") }

func (b brokenPlatform) Update(context.Context, string, repository.ProfileFields) error {
	return b.fail("update")
}

func (b brokenPlatform) Get(context.Context, string) (*repository.Profile, bool, error) {
	return nil, false, b.fail("get")
}

func TestUpstreamFailuresAreGeneric(t *testing.T) {
	const detail = "secret upstream detail"
	bp := brokenPlatform{detail: detail}
	h := newHarnessWith(t, nil, platform.New(bp, bp))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		hdr        map[string]string
		wantStatus int
		wantMsg    string
	}{
		{"signup", http.MethodPost, "/api/v1/auth/signup", signupBody, nil,
			http.StatusInternalServerError, "An internal server error occurred during registration."},
		{"login", http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"p"}`, nil,
			http.StatusInternalServerError, "An internal server error occurred."},
		{"profile", http.MethodGet, "/api/v1/auth/profile/u1", "", nil,
			http.StatusInternalServerError, "An internal server error occurred."},
		{"protected", http.MethodGet, "/api/v1/auth/protected", "", map[string]string{"Authorization": "Bearer tok"},
			http.StatusUnauthorized, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := h.do(t, tt.method, tt.path, tt.body, tt.hdr)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": tt.wantMsg}, body)
			assert.NotContains(t, fmt.Sprint(body), detail)
		})
	}
}
