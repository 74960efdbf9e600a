package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey   = "emails"
	failedKey  = "emails:failed"
	maxTries   = 3
	popTimeout = 2 * time.Second
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Kind    string    `json:"kind"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Sender delivers one message. SMTPSender is the production implementation.
type Sender interface {
	Deliver(job EmailJob) error
}

// Service queues outgoing mail in redis and drains the queue in Start.
type Service struct {
	redis      *redis.Client
	sender     Sender
	retryDelay time.Duration
	// idleDelay is the pause after a failed pop, so a down redis is not spun on.
	idleDelay  time.Duration
}

func New(client *redis.Client, sender Sender) *Service {
	return &Service{
		redis:      client,
		sender:     sender,
		retryDelay: 5 * time.Second,
		idleDelay:  popTimeout,
	}
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordEmail(job.Kind, "queue_failed")
		return fmt.Errorf("queue email to %s: %w", job.To, err)
	}

	logger.Debug("email queued", "kind", job.Kind, "to", job.To)
	return nil
}

// Start blocks until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")
	go s.reportQueueLength(ctx, 30*time.Second)

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("email queue pop failed", "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(s.idleDelay):
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad email job", "error", err)
		return
	}

	s.deliver(ctx, job)
}

func (s *Service) deliver(ctx context.Context, job EmailJob) {
	job.Tries++
	err := s.sender.Deliver(job)
	if err == nil {
		metrics.RecordEmail(job.Kind, "success")
		logger.Info("email sent", "kind", job.Kind, "to", job.To, "attempt", job.Tries)
		return
	}

	logger.Warn("email delivery failed", "kind", job.Kind, "to", job.To, "attempt", job.Tries, "error", err)

	if job.Tries >= maxTries {
		metrics.RecordEmail(job.Kind, "failed")
		s.saveFailed(ctx, job, err)
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(s.retryDelay):
	}

	// requeue on a fresh context so a shutdown mid-wait doesn't drop the job
	data, _ := json.Marshal(job)
	if err := s.redis.LPush(context.WithoutCancel(ctx), queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to requeue email", "to", job.To, "error", err)
	}
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, cause error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": cause.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	if err := s.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data)).Err(); err != nil {
		logger.Error("failed to store dead email", "to", job.To, "error", err)
		return
	}
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) reportQueueLength(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.QueueLength(ctx)
		}
	}
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}
