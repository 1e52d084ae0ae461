package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/messaging/rabbitmq"
	ticketworkflows "github.com/Apurer/cinema-booking-api/internal/durable/temporal/workflows/tickets"
	ticketactivities "github.com/Apurer/cinema-booking-api/internal/platform/temporal/activities/tickets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	rt, err := bootstrap.Start(ctx, "cinema-worker", cfg)
	if err != nil {
		log.Fatalf("failed to start worker: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Close(shutdownCtx); err != nil {
			rt.Logger.Error("failed to shutdown cleanly", slog.String("error", err.Error()))
		}
	}()
	logger := rt.Logger

	if cfg.AMQPURL != "" {
		consumer := rabbitmq.NewConsumer(cfg.AMQPURL, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("ticket event consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	temporalClient, err := bootstrap.ConnectTemporal(cfg, rt.Instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	ticketActivities := ticketactivities.NewActivities(rt.Service)
	w := worker.New(temporalClient, ticketworkflows.TicketIssuanceTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(ticketworkflows.TicketIssuanceWorkflow, workflow.RegisterOptions{Name: ticketworkflows.TicketIssuanceWorkflowName})
	w.RegisterActivityWithOptions(ticketActivities.IssueTicket, activity.RegisterOptions{Name: ticketactivities.IssueTicketActivityName})

	logger.Info("worker listening", slog.String("taskQueue", ticketworkflows.TicketIssuanceTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	if err := w.Run(interrupt); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
