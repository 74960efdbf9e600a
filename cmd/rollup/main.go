package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pitchlink/internal/analytics"
	"pitchlink/internal/config"
	"pitchlink/internal/db"
	"pitchlink/internal/events"
	"pitchlink/internal/logger"
)

// rollup keeps the analytics table in step with booking events.
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	if cfg.AMQPURL == "" {
		logger.Fatal("AMQP_URL is required for the rollup worker")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	consumer, err := events.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, cfg.RollupQueue, []string{events.BindAllBookings}, 0)
	if err != nil {
		logger.Fatalf("Failed to connect to broker: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	roller := analytics.NewRoller(analytics.NewRepository(database))
	if err := roller.Consume(ctx, consumer); err != nil {
		logger.Errorf("Rollup worker failed: %v", err)
		return
	}

	logger.Info("Rollup worker stopped")
}
