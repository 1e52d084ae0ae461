package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the ticket.issued queue and logs every event it receives.
type Consumer struct {
	url    string
	logger *slog.Logger
}

// NewConsumer builds a consumer for the broker at url.
func NewConsumer(url string, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{url: url, logger: logger}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			backoff = time.Second
		}
		c.logger.Warn("ticket event consumer disconnected",
			slog.String("error", fmt.Sprint(err)),
			slog.Duration("retry_in", backoff))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn("failed to set consumer prefetch", slog.String("error", err.Error()))
	}
	if _, err := ch.QueueDeclare(TicketIssuedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	deliveries, err := ch.ConsumeWithContext(ctx, TicketIssuedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue: %w", err)
	}
	c.logger.Info("ticket event consumer started", slog.String("queue", TicketIssuedQueue))
	for d := range deliveries {
		if err := c.handle(ctx, d.Body); err != nil {
			c.logger.Error("rejecting ticket event", slog.String("error", err.Error()))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return nil
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var event TicketIssuedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if event.TicketID <= 0 {
		return fmt.Errorf("event %s has no ticket id", event.EventID)
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "ticket issued",
		slog.String("event.id", event.EventID),
		slog.Int64("ticket.id", event.TicketID),
		slog.Int64("customer.id", event.CustomerID),
		slog.Int64("screening.id", event.ScreeningID),
		slog.Int("seats", event.NumSeats),
		slog.Time("issued_at", event.IssuedAt))
	return nil
}
