package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

const tracerName = "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/observability/service"

// Service decorates the cinema application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// GetCustomer loads a single customer.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, span := s.startSpan(ctx, "Service.GetCustomer", attribute.Int64("customer.id", id))
	defer span.End()

	result, err := s.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.Int64("customer.id", id))
	}
	return result, nil
}

// ListCustomers returns every customer.
func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	ctx, span := s.startSpan(ctx, "Service.ListCustomers")
	defer span.End()

	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customer.result.count", len(result)))
	s.logInfo(ctx, "listed customers", slog.Int("count", len(result)))
	return result, nil
}

// CreateCustomer registers a customer.
func (s *Service) CreateCustomer(ctx context.Context, input types.CustomerInput) (*domain.Customer, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateCustomer")
	defer span.End()

	s.logInfo(ctx, "creating customer")
	result, err := s.inner.CreateCustomer(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create customer")
	}
	span.SetAttributes(attribute.Int64("customer.id", result.ID))
	s.metrics.recordCreated(ctx, "customer")
	s.logInfo(ctx, "customer created", slog.Int64("customer.id", result.ID))
	return result, nil
}

// UpdateCustomer applies a partial update.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateCustomer", attribute.Int64("customer.id", id))
	defer span.End()

	s.logInfo(ctx, "updating customer", slog.Int64("customer.id", id))
	result, err := s.inner.UpdateCustomer(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update customer", slog.Int64("customer.id", id))
	}
	s.metrics.recordUpdated(ctx, "customer")
	s.logInfo(ctx, "customer updated", slog.Int64("customer.id", id))
	return result, nil
}

// DeleteCustomer removes a customer and their tickets.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, span := s.startSpan(ctx, "Service.DeleteCustomer", attribute.Int64("customer.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting customer", slog.Int64("customer.id", id))
	result, err := s.inner.DeleteCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete customer", slog.Int64("customer.id", id))
	}
	s.metrics.recordDeleted(ctx, "customer")
	s.logInfo(ctx, "customer deleted", slog.Int64("customer.id", id))
	return result, nil
}

// GetMovie loads a single movie.
func (s *Service) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	ctx, span := s.startSpan(ctx, "Service.GetMovie", attribute.Int64("movie.id", id))
	defer span.End()

	result, err := s.inner.GetMovie(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load movie", slog.Int64("movie.id", id))
	}
	return result, nil
}

// ListMovies returns the catalogue.
func (s *Service) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	ctx, span := s.startSpan(ctx, "Service.ListMovies")
	defer span.End()

	result, err := s.inner.ListMovies(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list movies")
	}
	span.SetAttributes(attribute.Int("movie.result.count", len(result)))
	s.logInfo(ctx, "listed movies", slog.Int("count", len(result)))
	return result, nil
}

// CreateMovie adds a movie to the catalogue.
func (s *Service) CreateMovie(ctx context.Context, input types.MovieInput) (*domain.Movie, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateMovie", attribute.String("movie.title", input.Title))
	defer span.End()

	s.logInfo(ctx, "creating movie", slog.String("movie.title", input.Title))
	result, err := s.inner.CreateMovie(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create movie", slog.String("movie.title", input.Title))
	}
	span.SetAttributes(attribute.Int64("movie.id", result.ID))
	s.metrics.recordCreated(ctx, "movie")
	s.logInfo(ctx, "movie created", slog.Int64("movie.id", result.ID))
	return result, nil
}

// UpdateMovie applies a partial update.
func (s *Service) UpdateMovie(ctx context.Context, id int64, patch types.MoviePatch) (*domain.Movie, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateMovie", attribute.Int64("movie.id", id))
	defer span.End()

	s.logInfo(ctx, "updating movie", slog.Int64("movie.id", id))
	result, err := s.inner.UpdateMovie(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update movie", slog.Int64("movie.id", id))
	}
	s.metrics.recordUpdated(ctx, "movie")
	s.logInfo(ctx, "movie updated", slog.Int64("movie.id", id))
	return result, nil
}

// DeleteMovie removes a movie with its screenings and tickets.
func (s *Service) DeleteMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	ctx, span := s.startSpan(ctx, "Service.DeleteMovie", attribute.Int64("movie.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting movie", slog.Int64("movie.id", id))
	result, err := s.inner.DeleteMovie(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete movie", slog.Int64("movie.id", id))
	}
	s.metrics.recordDeleted(ctx, "movie")
	s.logInfo(ctx, "movie deleted", slog.Int64("movie.id", id))
	return result, nil
}

// ListScreenings returns the screenings of a movie.
func (s *Service) ListScreenings(ctx context.Context, movieID int64) ([]*domain.Screening, error) {
	ctx, span := s.startSpan(ctx, "Service.ListScreenings", attribute.Int64("movie.id", movieID))
	defer span.End()

	result, err := s.inner.ListScreenings(ctx, movieID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list screenings", slog.Int64("movie.id", movieID))
	}
	span.SetAttributes(attribute.Int("screening.result.count", len(result)))
	return result, nil
}

// GetScreening loads one screening of a movie.
func (s *Service) GetScreening(ctx context.Context, movieID, screeningID int64) (*domain.Screening, error) {
	ctx, span := s.startSpan(ctx, "Service.GetScreening",
		attribute.Int64("movie.id", movieID),
		attribute.Int64("screening.id", screeningID),
	)
	defer span.End()

	result, err := s.inner.GetScreening(ctx, movieID, screeningID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load screening",
			slog.Int64("movie.id", movieID), slog.Int64("screening.id", screeningID))
	}
	return result, nil
}

// CreateScreening schedules a screening.
func (s *Service) CreateScreening(ctx context.Context, movieID int64, input types.ScreeningInput) (*domain.Screening, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateScreening", attribute.Int64("movie.id", movieID))
	defer span.End()

	s.logInfo(ctx, "scheduling screening", slog.Int64("movie.id", movieID), slog.Int("screen", input.ScreenNumber))
	result, err := s.inner.CreateScreening(ctx, movieID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to schedule screening", slog.Int64("movie.id", movieID))
	}
	s.metrics.recordCreated(ctx, "screening")
	s.logInfo(ctx, "screening scheduled", slog.Int64("screening.id", result.ID))
	return result, nil
}

// BookTicket issues a ticket.
func (s *Service) BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	ctx, span := s.startSpan(ctx, "Service.BookTicket",
		attribute.Int64("customer.id", input.CustomerID),
		attribute.Int64("screening.id", input.ScreeningID),
		attribute.Int("ticket.seats", input.NumSeats),
	)
	defer span.End()

	s.logInfo(ctx, "booking ticket",
		slog.Int64("customer.id", input.CustomerID),
		slog.Int64("screening.id", input.ScreeningID),
		slog.Int("seats", input.NumSeats))
	result, err := s.inner.BookTicket(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to book ticket",
			slog.Int64("customer.id", input.CustomerID), slog.Int64("screening.id", input.ScreeningID))
	}
	span.SetAttributes(attribute.Int64("ticket.id", result.ID))
	s.metrics.recordBooked(ctx, result.NumSeats)
	s.logInfo(ctx, "ticket booked", slog.Int64("ticket.id", result.ID), slog.Int("seats", result.NumSeats))
	return result, nil
}

// ListTickets returns the tickets for a customer and screening pair.
func (s *Service) ListTickets(ctx context.Context, customerID, screeningID int64) ([]*domain.Ticket, error) {
	ctx, span := s.startSpan(ctx, "Service.ListTickets",
		attribute.Int64("customer.id", customerID),
		attribute.Int64("screening.id", screeningID),
	)
	defer span.End()

	result, err := s.inner.ListTickets(ctx, customerID, screeningID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list tickets",
			slog.Int64("customer.id", customerID), slog.Int64("screening.id", screeningID))
	}
	span.SetAttributes(attribute.Int("ticket.result.count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

// handleError records err on the span. Expected failures such as a missing row or a
// rejected payload are logged at warn; storage failures and unclassified errors at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	level := slog.LevelError
	if kind, ok := application.KindOf(err); ok {
		attrs = append(attrs, slog.String("failure.kind", string(kind)))
		if span != nil {
			span.SetAttributes(attribute.String("failure.kind", string(kind)))
		}
		if kind != application.KindStorage {
			level = slog.LevelWarn
		}
		s.metrics.recordFailed(ctx, kind)
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, level, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created       metric.Int64Counter
	updated       metric.Int64Counter
	deleted       metric.Int64Counter
	failed        metric.Int64Counter
	ticketsBooked metric.Int64Counter
	seatsBooked   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("cinema.service.created", metric.WithDescription("Number of records created"))
	updated, _ := m.Int64Counter("cinema.service.updated", metric.WithDescription("Number of records updated"))
	deleted, _ := m.Int64Counter("cinema.service.deleted", metric.WithDescription("Number of records deleted"))
	failed, _ := m.Int64Counter("cinema.service.failed", metric.WithDescription("Number of failed operations by failure kind"))
	ticketsBooked, _ := m.Int64Counter("cinema.service.tickets.issued", metric.WithDescription("Number of tickets issued"))
	seatsBooked, _ := m.Int64Counter("cinema.service.seats.booked", metric.WithDescription("Number of seats reserved"))
	return serviceMetrics{
		created:       created,
		updated:       updated,
		deleted:       deleted,
		failed:        failed,
		ticketsBooked: ticketsBooked,
		seatsBooked:   seatsBooked,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, entity string) {
	addCounter(ctx, m.created, 1, attribute.String("cinema.entity", entity))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, entity string) {
	addCounter(ctx, m.updated, 1, attribute.String("cinema.entity", entity))
}

func (m serviceMetrics) recordDeleted(ctx context.Context, entity string) {
	addCounter(ctx, m.deleted, 1, attribute.String("cinema.entity", entity))
}

func (m serviceMetrics) recordFailed(ctx context.Context, kind application.Kind) {
	addCounter(ctx, m.failed, 1, attribute.String("failure.kind", string(kind)))
}

func (m serviceMetrics) recordBooked(ctx context.Context, seats int) {
	addCounter(ctx, m.ticketsBooked, 1)
	addCounter(ctx, m.seatsBooked, int64(seats))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
