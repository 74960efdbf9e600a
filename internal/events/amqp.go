package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, ch, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, key string, ev BookingEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Body:         b,
	})
	if err != nil {
		metrics.RecordEvent(key, "failed")
		return fmt.Errorf("publish %s: %w", key, err)
	}

	metrics.RecordEvent(key, "success")
	return nil
}

func (p *AMQPPublisher) Close() error {
	return closeAll(p.conn, p.ch)
}

// Handler processes one event. Returning an error requeues the delivery.
type Handler func(ctx context.Context, key string, ev BookingEvent) error

type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	prefetch int
}

func NewConsumer(url, exchange, queue string, keys []string, prefetch int) (*Consumer, error) {
	conn, ch, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(conn, ch)
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	for _, rk := range keys {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			_ = closeAll(conn, ch)
			return nil, fmt.Errorf("bind %s: %w", rk, err)
		}
	}

	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = closeAll(conn, ch)
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &Consumer{conn: conn, ch: ch, queue: q.Name, prefetch: prefetch}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			dispatch(ctx, d, handle)
		}
	}
}

func (c *Consumer) Close() error {
	return closeAll(c.conn, c.ch)
}

// dispatch acks on success, requeues on handler error and drops undecodable messages.
func dispatch(ctx context.Context, d amqp.Delivery, handle Handler) {
	ev, err := Decode(d.Body)
	if err != nil {
		logger.Error("dropping malformed event", "key", d.RoutingKey, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handle(ctx, d.RoutingKey, ev); err != nil {
		logger.Warn("event handler failed, requeueing", "key", d.RoutingKey, "booking_id", ev.BookingID, "error", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}

func dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = closeAll(conn, ch)
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}
	return conn, ch, nil
}

func closeAll(conn *amqp.Connection, ch *amqp.Channel) error {
	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
