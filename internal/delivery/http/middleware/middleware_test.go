package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Error     struct {
		Kind    string   `json:"kind"`
		Details []string `json:"details"`
	} `json:"error"`
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"not found", apperror.NotFound("Job not found"), http.StatusNotFound, "not_found"},
		{"validation", apperror.Validation("Invalid input", "Job title: is required"), http.StatusBadRequest, "validation_error"},
		{"invalid status", apperror.InvalidStatus("Invalid status", nil), http.StatusBadRequest, "invalid_status"},
		{"upstream", apperror.Upstream("Search failed", errors.New("dial tcp")), http.StatusBadGateway, "upstream_failure"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), ErrorHandler())
			r.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.kind, env.Error.Kind)
			assert.NotEmpty(t, env.RequestID)
		})
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(apperror.Validation("Invalid input", "Job URL: is required"))
	})

	_, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, []string{"Job URL: is required"}, env.Error.Details)
}

func TestErrorHandler_HidesInternalMessage(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) { _ = c.Error(errors.New("pq: password authentication failed")) })

	w, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, env.Message, "password")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "bad id with spaces")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestRateLimitMiddleware_InMemoryFallback(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitConfig{Limit: 2, Window: time.Minute, KeyPrefix: "t:"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w, _ := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", env.Error.Kind)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestMemoryWindow_Resets(t *testing.T) {
	m := newMemoryWindow()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	n, _ := m.hit("k", time.Minute)
	assert.Equal(t, 1, n)
	n, _ = m.hit("k", time.Minute)
	assert.Equal(t, 2, n)

	now = now.Add(2 * time.Minute)
	n, _ = m.hit("k", time.Minute)
	assert.Equal(t, 1, n)
}

func TestUploadLimitMiddleware_NilLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/jobs/:id/attachments", UploadLimitMiddleware(nil), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/1/attachments", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUploadLimitMiddleware_FailedUploadsReleaseSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	limiter := security.NewUploadLimiter(rdb, 1, 10)

	status := http.StatusBadRequest
	r := gin.New()
	r.POST("/jobs/:id/attachments", UploadLimitMiddleware(limiter), func(c *gin.Context) { c.Status(status) })
	upload := func() (*httptest.ResponseRecorder, envelope) {
		return serve(t, r, httptest.NewRequest(http.MethodPost, "/jobs/1/attachments", nil))
	}

	for i := 0; i < 3; i++ {
		w, _ := upload()
		assert.Equal(t, http.StatusBadRequest, w.Code, "rejected uploads do not use the quota")
	}

	status = http.StatusCreated
	w, _ := upload()
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := upload()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limited", env.Error.Kind)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://jobs.example.com/", true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://jobs.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://jobs.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware("s3cret", nil))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("UserID")) })

	w, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", env.Error.Kind)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong", jwt.MapClaims{"sub": "u1"}))
	w, _ = serve(t, r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
