package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/memory"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/messaging/rabbitmq"
	cinemaobs "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/observability"
	cinemapostgres "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/persistence/postgres"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
	"github.com/Apurer/cinema-booking-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/cinema-booking-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/cinema-booking-api/internal/platform/postgres"
)

// Runtime holds the wired dependencies of a cinema process.
type Runtime struct {
	Config      Config
	Instruments *platformobservability.Instruments
	Logger      *slog.Logger
	DB          *gorm.DB
	Gateways    application.Gateways
	Service     ports.Service

	closers []func(context.Context) error
}

// Start initializes observability, storage and the decorated cinema service.
// Without a reachable database the gateways fall back to memory.
func Start(ctx context.Context, serviceName string, cfg Config) (*Runtime, error) {
	settings := platformobservability.SettingsFromEnv(serviceName)
	settings.Environment = cfg.Environment
	instruments, shutdown, err := platformobservability.Init(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	rt := &Runtime{
		Config:      cfg,
		Instruments: instruments,
		Logger:      instruments.Logger,
		closers:     []func(context.Context) error{shutdown},
	}

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, rt.Logger)
	rt.closers = append(rt.closers, func(context.Context) error { cleanupDB(); return nil })
	rt.DB = db
	if db != nil {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	gateways, keys := BuildStores(db)
	rt.Gateways = gateways

	if cfg.SeedData {
		seeded, err := migrations.Seed(ctx, rt.Gateways, time.Now())
		if err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
		rt.Logger.Info("seed data checked", slog.Bool("seeded", seeded))
	}

	opts := []application.Option{
		application.WithIdempotencyStore(keys),
		application.WithLogger(rt.Logger),
	}
	if cfg.AMQPURL != "" {
		opts = append(opts, application.WithNotifier(rabbitmq.NewPublisher(cfg.AMQPURL, rabbitmq.WithLogger(rt.Logger))))
		rt.Logger.Info("ticket notifications enabled", slog.String("queue", rabbitmq.TicketIssuedQueue))
	}
	rt.Service = cinemaobs.New(
		application.NewService(rt.Gateways, opts...),
		cinemaobs.WithLogger(rt.Logger),
		cinemaobs.WithTracer(instruments.Tracer("internal.cinema.application")),
		cinemaobs.WithMeter(instruments.Meter("internal.cinema.application")),
	)
	return rt, nil
}

// BuildGateways returns GORM gateways for db, or memory gateways when db is nil.
func BuildGateways(db *gorm.DB) application.Gateways {
	gw, _ := BuildStores(db)
	return gw
}

// BuildStores returns the gateways and the idempotency store over one backend: GORM when
// db is set, otherwise a single memory store so keys follow their tickets.
func BuildStores(db *gorm.DB) (application.Gateways, ports.IdempotencyStore) {
	if db == nil {
		store := memory.NewStore()
		return application.Gateways{
			Customers:  store.Customers(),
			Movies:     store.Movies(),
			Screenings: store.Screenings(),
			Tickets:    store.Tickets(),
		}, store.Idempotency()
	}
	return application.Gateways{
		Customers:  cinemapostgres.NewCustomers(db),
		Movies:     cinemapostgres.NewMovies(db),
		Screenings: cinemapostgres.NewScreenings(db),
		Tickets:    cinemapostgres.NewTickets(db),
	}, cinemapostgres.NewIdempotencyStore(db)
}

// AddCloser registers fn to run on Close, before the closers registered earlier.
func (r *Runtime) AddCloser(fn func(context.Context) error) {
	r.closers = append(r.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, r.closers[i](ctx))
	}
	r.closers = nil
	return err
}

// ConnectTemporal dials Temporal with tracing and structured logging.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
