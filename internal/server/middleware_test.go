package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitchlink/internal/analytics"
	"pitchlink/internal/api"
	"pitchlink/internal/auth"
	"pitchlink/internal/booking"
	"pitchlink/internal/dashboard"
	"pitchlink/internal/logger"
	"pitchlink/internal/payment"
	"pitchlink/internal/pitch"
	"pitchlink/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestServer(t *testing.T, db Pinger, burst int) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// Services are never reached: every request in these tests stops in middleware.
	return New(ctx, Options{
		JWTSecret:      testSecret,
		DB:             db,
		CORSOrigins:    []string{"https://app.pitchlink.ng"},
		RateLimitRPS:   1,
		RateLimitBurst: burst,
	}, Handlers{
		Users:     user.NewHandler(nil),
		Pitches:   pitch.NewHandler(nil),
		Bookings:  booking.NewHandler(nil),
		Payments:  payment.NewHandler(nil),
		Dashboard: dashboard.NewHandler(nil),
		Analytics: analytics.NewHandler(nil),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	session, err := auth.NewSession(auth.Subject{UserID: 7, Email: "someone@example.com", Role: role}, testSecret)
	require.NoError(t, err)
	return "Bearer " + session.AccessToken
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestHealthDatabaseDown(t *testing.T) {
	s := newTestServer(t, fakePinger{err: errors.New("connection refused")}, 10)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 50)

	for _, path := range []string{"/v1/me", "/v1/bookings", "/v1/dashboard", "/api/pitches", "/api/dashboard"} {
		w := serve(s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestOwnerSurfaceRejectsPlayers(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", bearer(t, auth.RolePlayer))
	w := serve(s, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(s, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "https://app.pitchlink.ng")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := serve(s, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.pitchlink.ng", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = serve(s, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSActualRequestReachesHandler(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.pitchlink.ng")
	w := serve(s, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.pitchlink.ng", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 3)

	for i := 0; i < 3; i++ {
		w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 1, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 1, time.Minute)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	require.Equal(t, 2, rl.size())

	rl.evict(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, rl.size())
}

func TestRequestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(logger.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop().Sugar()) })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggingMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/ok?x=1", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, fakePinger{}, 10)

	serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	w := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pitchlink_http_requests_total")
}
