package analytics

import (
	"context"
	"fmt"

	"pitchlink/internal/events"
	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"
)

// Roller keeps the daily rollups in step with booking events.
type Roller struct {
	repo Repository
}

func NewRoller(repo Repository) *Roller {
	return &Roller{repo: repo}
}

// Handle has the events.Handler signature.
func (r *Roller) Handle(ctx context.Context, key string, ev events.BookingEvent) error {
	if err := r.repo.Recompute(ctx, ev.OwnerID, ev.BookingDate); err != nil {
		metrics.RecordRollup("failed")
		return fmt.Errorf("rollup owner %d on %s: %w", ev.OwnerID, ev.BookingDate, err)
	}

	metrics.RecordRollup("success")
	logger.Debug("rollup updated", "key", key, "owner_id", ev.OwnerID, "date", ev.BookingDate, "booking_id", ev.BookingID)
	return nil
}

// Consume runs the roller against a broker queue until ctx ends.
func (r *Roller) Consume(ctx context.Context, c *events.Consumer) error {
	logger.Info("analytics rollup consumer started")
	err := c.Run(ctx, r.Handle)
	logger.Info("analytics rollup consumer stopped")
	return err
}
