package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchlink/internal/analytics"
	"pitchlink/internal/api"
	"pitchlink/internal/auth"
	"pitchlink/internal/booking"
	"pitchlink/internal/config"
	"pitchlink/internal/dashboard"
	"pitchlink/internal/db"
	"pitchlink/internal/email"
	"pitchlink/internal/events"
	"pitchlink/internal/logger"
	"pitchlink/internal/obs"
	"pitchlink/internal/payment"
	"pitchlink/internal/pitch"
	"pitchlink/internal/server"
	"pitchlink/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

// @title PitchLink API
// @version 1.0
// @description Football pitch booking and owner dashboard API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	logger.Info("Starting PitchLink", "env", cfg.Env, "version", version)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := api.RegisterGinValidators(); err != nil {
		logger.Fatalf("Failed to register validators: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := obs.InitTracer(ctx, "pitchlink-api", version, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatalf("Failed to start tracing: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// mail queueing and token revocation degrade, the API still serves
		logger.Warn("Redis unreachable at startup", "addr", cfg.RedisAddr, "error", err)
	}

	sender := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, cfg.EmailFromName)
	emailService := email.New(redisClient, sender)
	go emailService.Start(ctx)

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatalf("Failed to connect to broker: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Publishing booking events", "exchange", cfg.AMQPExchange)
	}

	revoker := auth.NewRedisRevoker(redisClient)
	userRepo := user.NewRepository(database)
	directory := user.NewDirectory(userRepo)
	authenticator, err := auth.NewAuthenticator(cfg.AuthMode, directory)
	if err != nil {
		logger.Fatalf("Failed to build authenticator: %v", err)
	}
	if authenticator.Mode() == auth.ModeTrust {
		logger.Warn("AUTH_MODE=trust: sign-in does not check passwords")
	}
	guard := auth.NewGuard(directory)

	refs, err := booking.NewReferences(cfg.BookingRefSalt)
	if err != nil {
		logger.Fatalf("Failed to build booking references: %v", err)
	}

	pitchRepo := pitch.NewRepository(database)
	bookingService := booking.NewService(
		booking.NewRepository(database),
		pitchRepo,
		guard,
		refs,
		publisher,
		emailService,
		booking.Options{Location: cfg.Location(), OverlapCheck: cfg.BookingOverlapCheck},
	)
	analyticsRepo := analytics.NewRepository(database)

	handlers := server.Handlers{
		Users:     user.NewHandler(user.NewService(userRepo, authenticator, revoker, cfg.JWTSecret)),
		Pitches:   pitch.NewHandler(pitch.NewService(pitchRepo, guard)),
		Bookings:  booking.NewHandler(bookingService),
		Payments:  payment.NewHandler(payment.NewService(payment.NewRepository(database), bookingService)),
		Dashboard: dashboard.NewHandler(dashboard.NewService(dashboard.NewRepository(database), pitchRepo, guard, time.Now, cfg.Location())),
		Analytics: analytics.NewHandler(analytics.NewService(analyticsRepo, guard, time.Now, cfg.Location())),
	}

	if cfg.RollupInProcess && cfg.AMQPURL != "" {
		consumer, err := events.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, cfg.RollupQueue, []string{events.BindAllBookings}, 0)
		if err != nil {
			logger.Fatalf("Failed to start rollup consumer: %v", err)
		}
		defer consumer.Close()
		go func() {
			if err := analytics.NewRoller(analyticsRepo).Consume(ctx, consumer); err != nil {
				logger.Error("Rollup consumer stopped", "error", err)
			}
		}()
	}

	srv := server.New(ctx, server.Options{
		JWTSecret:      cfg.JWTSecret,
		Revoker:        revoker,
		DB:             database,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, handlers)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Port); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	cancel()

	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Errorf("Error flushing traces: %v", err)
	}

	logger.Info("Server stopped")
}
