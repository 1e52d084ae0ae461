package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Apurer/cinema-booking-api/internal/app/api"
	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("cinema API stopped: %v", err)
	}
}
