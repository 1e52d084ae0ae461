//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ProviderName = "cinema-api"
	ConsumerName = "box-office"

	StateCatalogueSeeded = "the demo catalogue is seeded"
	StateCinemaEmpty     = "the cinema has no data"
)

const (
	ExistingMovieID     int64 = 1
	MissingMovieID      int64 = 404
	ExistingCustomerID  int64 = 1
	ExistingScreeningID int64 = 1

	// TokenSecret signs the bearer token the consumer replays against the provider.
	TokenSecret = "pact-secret"
)

// BearerToken returns a stable HS256 token for a user-role caller. It carries no expiry
// so the token recorded in the pact file stays valid during verification.
func BearerToken(t testing.TB) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "box-office",
		"role": "User",
	}).SignedString([]byte(TokenSecret))
	if err != nil {
		t.Fatalf("sign pact token: %v", err)
	}
	return token
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the box office consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
