// Package rabbitmq publishes and consumes cinema domain events on RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// TicketIssuedQueue is the durable queue ticket events are routed to.
const TicketIssuedQueue = "ticket.issued"

// DefaultPublishTimeout bounds dialing, declaring and publishing one event.
const DefaultPublishTimeout = 2 * time.Second

// TicketIssuedEvent is the message body published for every booked ticket.
type TicketIssuedEvent struct {
	EventID     string    `json:"eventId"`
	TicketID    int64     `json:"ticketId"`
	CustomerID  int64     `json:"customerId"`
	ScreeningID int64     `json:"screeningId"`
	NumSeats    int       `json:"numSeats"`
	IssuedAt    time.Time `json:"issuedAt"`
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(ctx context.Context, url string) (channel, func() error, error)

// Publisher implements ports.TicketNotifier. Each event opens its own connection, so a
// broker outage never leaves a stale channel behind. Each attempt is cut off after the
// publish timeout; failures are logged and dropped.
type Publisher struct {
	url     string
	logger  *slog.Logger
	dial    dialFunc
	now     func() time.Time
	timeout time.Duration
}

type Option func(*Publisher)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPublisher builds a publisher for the broker at url.
func NewPublisher(url string, opts ...Option) *Publisher {
	p := &Publisher{
		url:     url,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		dial:    dialChannel,
		now:     time.Now,
		timeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// TicketIssued publishes a persistent ticket.issued event.
func (p *Publisher) TicketIssued(ctx context.Context, ticket *domain.Ticket) {
	if p == nil || ticket == nil {
		return
	}
	event := TicketIssuedEvent{
		EventID:     uuid.NewString(),
		TicketID:    ticket.ID,
		CustomerID:  ticket.CustomerID,
		ScreeningID: ticket.ScreeningID,
		NumSeats:    ticket.NumSeats,
		IssuedAt:    ticket.CreatedAt.UTC(),
	}
	if err := p.publish(ctx, event); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish ticket event",
			slog.Int64("ticket.id", ticket.ID),
			slog.String("event.id", event.EventID),
			slog.String("error", err.Error()))
		return
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "ticket event published",
		slog.Int64("ticket.id", ticket.ID),
		slog.String("event.id", event.EventID))
}

func (p *Publisher) publish(ctx context.Context, event TicketIssuedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ch, closeConn, err := p.dial(ctx, p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = closeConn() }()
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(TicketIssuedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	return ch.PublishWithContext(ctx, "", TicketIssuedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    p.now().UTC(),
		Type:         TicketIssuedQueue,
		Body:         body,
	})
}

// dialChannel opens a connection whose TCP dial and AMQP handshake both end at the
// ctx deadline. The client clears the socket deadline once the handshake completes.
func dialChannel(ctx context.Context, url string) (channel, func() error, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			var d net.Dialer
			c, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if deadline, ok := ctx.Deadline(); ok {
				if err := c.SetDeadline(deadline); err != nil {
					_ = c.Close()
					return nil, err
				}
			}
			return c, nil
		},
	})
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn.Close, nil
}

var _ ports.TicketNotifier = (*Publisher)(nil)
