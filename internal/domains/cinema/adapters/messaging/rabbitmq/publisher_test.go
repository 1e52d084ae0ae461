package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	closed    bool
	fail      error
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.fail != nil {
		return f.fail
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel, dialErr error) (*Publisher, *bytes.Buffer) {
	logs := &bytes.Buffer{}
	p := NewPublisher("amqp://test", WithLogger(slog.New(slog.NewJSONHandler(logs, nil))))
	p.dial = func(context.Context, string) (channel, func() error, error) {
		if dialErr != nil {
			return nil, nil, dialErr
		}
		return ch, func() error { return nil }, nil
	}
	return p, logs
}

func TestPublisher_TicketIssued(t *testing.T) {
	ch := &fakeChannel{}
	p, _ := newTestPublisher(ch, nil)
	issued := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	p.TicketIssued(context.Background(), &domain.Ticket{
		Base:        domain.Base{ID: 7, CreatedAt: issued},
		CustomerID:  1,
		ScreeningID: 2,
		NumSeats:    4,
	})

	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{TicketIssuedQueue}, ch.declared)
	assert.Equal(t, []string{TicketIssuedQueue}, ch.keys)
	assert.True(t, ch.closed)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var event TicketIssuedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, msg.MessageId, event.EventID)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, int64(7), event.TicketID)
	assert.Equal(t, 4, event.NumSeats)
	assert.True(t, event.IssuedAt.Equal(issued))
}

func TestPublisher_FailuresAreLoggedNotRaised(t *testing.T) {
	p, logs := newTestPublisher(nil, errors.New("connection refused"))

	assert.NotPanics(t, func() {
		p.TicketIssued(context.Background(), &domain.Ticket{Base: domain.Base{ID: 3}, NumSeats: 1})
	})
	assert.Contains(t, logs.String(), "failed to publish ticket event")
	assert.Contains(t, logs.String(), "connection refused")

	ch := &fakeChannel{fail: errors.New("channel closed")}
	p, logs = newTestPublisher(ch, nil)
	p.TicketIssued(context.Background(), &domain.Ticket{Base: domain.Base{ID: 4}, NumSeats: 1})
	assert.Contains(t, logs.String(), "channel closed")
	assert.True(t, ch.closed)
}

func TestPublisher_UnresponsiveBrokerIsCutOff(t *testing.T) {
	logs := &bytes.Buffer{}
	p := NewPublisher("amqp://test",
		WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
		WithPublishTimeout(50*time.Millisecond))
	var sawDeadline bool
	p.dial = func(ctx context.Context, _ string) (channel, func() error, error) {
		_, sawDeadline = ctx.Deadline()
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	start := time.Now()
	p.TicketIssued(context.Background(), &domain.Ticket{Base: domain.Base{ID: 5}, NumSeats: 1})

	assert.True(t, sawDeadline)
	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, logs.String(), context.DeadlineExceeded.Error())
}

func TestDialChannel_HandshakeHonoursDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	held := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			held <- conn
		}
	}()
	t.Cleanup(func() {
		select {
		case conn := <-held:
			_ = conn.Close()
		default:
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err = dialChannel(ctx, "amqp://guest:guest@"+ln.Addr().String()+"/")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestConsumer_Handle(t *testing.T) {
	logs := &bytes.Buffer{}
	c := NewConsumer("amqp://test", slog.New(slog.NewJSONHandler(logs, nil)))

	body, err := json.Marshal(TicketIssuedEvent{EventID: "e-1", TicketID: 9, NumSeats: 2})
	require.NoError(t, err)
	require.NoError(t, c.handle(context.Background(), body))
	assert.Contains(t, logs.String(), `"ticket.id":9`)

	assert.Error(t, c.handle(context.Background(), []byte("{")))
	assert.Error(t, c.handle(context.Background(), []byte(`{"eventId":"e-2"}`)))
}
