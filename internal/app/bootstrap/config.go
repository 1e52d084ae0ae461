package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings shared by the cinema processes.
type Config struct {
	Port              string
	PostgresDSN       string
	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	AMQPURL           string
	SeedData          bool
	Environment       string
}

// LoadConfig loads the optional dotenv files, reads environment variables, applies
// defaults and validates basic constraints. Variables already set in the process win
// over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		JWTAudience:       strings.TrimSpace(os.Getenv("JWT_AUDIENCE")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		AMQPURL:           strings.TrimSpace(os.Getenv("AMQP_URL")),
		SeedData:          isTruthy(os.Getenv("SEED_DATA")),
		Environment:       envDefault("ENVIRONMENT", "local"),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be between 1 and 65535, got %q", cfg.Port)
	}
	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return Config{}, errors.New("JWT_SECRET is required in production")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
