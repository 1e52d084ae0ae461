package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cinemaserver "github.com/Apurer/cinema-booking-api/go"
	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
	cinemaworkflows "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/workflows"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

const serviceName = "cinema-api"

// Run boots the cinema HTTP API with observability, gateways and workflows wired.
func Run(ctx context.Context, cfg bootstrap.Config) error {
	rt, err := bootstrap.Start(ctx, serviceName, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Close(shutdownCtx); err != nil {
			rt.Logger.Error("failed to shutdown cleanly", slog.String("error", err.Error()))
		}
	}()
	logger := rt.Logger

	var ticketWorkflows ports.WorkflowOrchestrator = cinemaworkflows.NewInlineTicketWorkflows(rt.Service)
	if temporalClient, err := bootstrap.ConnectTemporal(cfg, rt.Instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, booking tickets inline", slog.String("error", err.Error()))
	} else {
		rt.AddCloser(func(context.Context) error { temporalClient.Close(); return nil })
		ticketWorkflows = cinemaworkflows.NewTemporalTicketWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := NewRouter(cfg, rt.Service, ticketWorkflows, logger)
	addr := cfg.Addr()
	logger.Info("cinema API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("cinema API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

// NewRouter builds the gin engine. Middleware is attached before the routes so it
// applies to every handler.
func NewRouter(cfg bootstrap.Config, service ports.Service, workflows ports.WorkflowOrchestrator, logger *slog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		cinemaserver.IdentityMiddleware(cinemaserver.TokenConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		}, logger),
	)
	handlers := cinemaserver.ApiHandleFunctions{
		CustomerAPI: cinemaserver.NewCustomerAPI(service),
		MovieAPI:    cinemaserver.NewMovieAPI(service),
		BookingAPI:  cinemaserver.NewBookingAPI(service, workflows),
	}
	return cinemaserver.NewRouterWithGinEngine(router, handlers)
}
