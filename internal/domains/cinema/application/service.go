package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
	"github.com/Apurer/cinema-booking-api/internal/shared/validation"
)

// Gateways bundles one persistence gateway per cinema entity.
type Gateways struct {
	Customers  ports.Gateway[domain.Customer]
	Movies     ports.Gateway[domain.Movie]
	Screenings ports.Gateway[domain.Screening]
	Tickets    ports.Gateway[domain.Ticket]
}

// Service implements the cinema use cases: access checks, validation, merging and booking.
type Service struct {
	gw          Gateways
	rules       *validation.Validator
	notifier    ports.TicketNotifier
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
	now         func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifier publishes issued tickets through n.
func WithNotifier(n ports.TicketNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithIdempotencyStore lets booking retries that carry the same key replay the original ticket.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithLogger receives best-effort failures that never reach the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the gateways into a cinema service.
func NewService(gateways Gateways, opts ...Option) *Service {
	s := &Service{
		gw:     gateways,
		rules:  newRules(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) authorize(ctx context.Context, resource authz.Resource, action authz.Action) error {
	return mapError(authz.AuthorizeContext(ctx, resource, action))
}

var _ ports.Service = (*Service)(nil)
