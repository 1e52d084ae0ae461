package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
	"github.com/Apurer/cinema-booking-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/cinema-booking-api/internal/platform/postgres"
)

func main() {
	seed := flag.Bool("seed", false, "load the demo catalogue when the database is empty")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := bootstrap.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	logger.Info("schema migrated")

	if *seed || cfg.SeedData {
		seeded, err := migrations.Seed(ctx, bootstrap.BuildGateways(db), time.Now())
		if err != nil {
			log.Fatalf("failed to seed data: %v", err)
		}
		logger.Info("seed data checked", slog.Bool("seeded", seeded))
	}
}
