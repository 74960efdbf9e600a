package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pitchlink/internal/analytics"
	"pitchlink/internal/auth"
	"pitchlink/internal/booking"
	"pitchlink/internal/dashboard"
	"pitchlink/internal/logger"
	"pitchlink/internal/obs"
	"pitchlink/internal/payment"
	"pitchlink/internal/pitch"
	"pitchlink/internal/user"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

// Handlers groups the per-domain HTTP handlers the router mounts.
type Handlers struct {
	Users     *user.Handler
	Pitches   *pitch.Handler
	Bookings  *booking.Handler
	Payments  *payment.Handler
	Dashboard *dashboard.Handler
	Analytics *analytics.Handler
}

type Options struct {
	JWTSecret      string
	Revoker        auth.Revoker
	DB             Pinger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
}

// New builds the router. ctx bounds the rate limiter's background cleanup.
func New(ctx context.Context, opts Options, h Handlers) *Server {
	router := gin.New()
	limiter := NewRateLimiter(ctx, opts.RateLimitRPS, opts.RateLimitBurst, 3*time.Minute)

	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		obs.Middleware(otel.GetTracerProvider()),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		CORSMiddleware(opts.CORSOrigins),
		RateLimitMiddleware(limiter),
	)

	router.GET("/health", Health(opts.DB))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authed := auth.AuthMiddleware(opts.JWTSecret, opts.Revoker)

	public := router.Group("/auth")
	{
		public.POST("/sign-up", h.Users.SignUp)
		public.POST("/sign-in", h.Users.SignIn)
		public.POST("/refresh", h.Users.Refresh)
	}

	v1 := router.Group("/v1")
	v1.Use(authed)
	{
		v1.POST("/sign-out", h.Users.SignOut)
		v1.GET("/me", h.Users.Me)

		v1.GET("/pitches", h.Pitches.List)
		v1.POST("/pitches", h.Pitches.Create)
		v1.GET("/pitches/:id", h.Pitches.Get)
		v1.PATCH("/pitches/:id", h.Pitches.Update)
		v1.DELETE("/pitches/:id", h.Pitches.Delete)
		v1.POST("/pitches/:id/bookings", h.Bookings.Request)

		v1.GET("/bookings", h.Bookings.List)
		v1.GET("/bookings/search", h.Bookings.Search)
		v1.GET("/bookings/:id", h.Bookings.Get)
		v1.PATCH("/bookings/:id/status", h.Bookings.UpdateStatus)
		v1.POST("/bookings/:id/payments", h.Payments.Record)
		v1.GET("/bookings/:id/payments", h.Payments.List)

		v1.GET("/dashboard", h.Dashboard.Get)
		v1.GET("/analytics", h.Analytics.Get)
	}

	// Owner dashboard surface: responses use the {success, data} envelope.
	owner := router.Group("/api")
	owner.Use(authed, auth.RequireRole(auth.RoleOwner))
	{
		owner.GET("/pitches", h.Pitches.APIList)
		owner.POST("/pitches", h.Pitches.APICreate)
		owner.GET("/pitches/:id", h.Pitches.APIGet)
		owner.PUT("/pitches/:id", h.Pitches.APIUpdate)

		owner.GET("/bookings", h.Bookings.APIList)
		owner.POST("/bookings", h.Bookings.APICreate)

		owner.GET("/dashboard", h.Dashboard.APIGet)
	}

	return &Server{router: router, limiter: limiter}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
