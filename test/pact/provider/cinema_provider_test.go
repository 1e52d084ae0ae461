//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/cinema-booking-api/test/pact"

	"github.com/Apurer/cinema-booking-api/internal/app/api"
	"github.com/Apurer/cinema-booking-api/internal/app/bootstrap"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/memory"
	cinemaobs "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/observability"
	cinemaworkflows "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/workflows"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/platform/migrations"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCinemaProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogueSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.store.Reset()
			if setup {
				app.seed(t)
			}
			return nil, nil
		},
		pacttest.StateCinemaEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.store.Reset()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.store.Reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store    *memory.Store
	gateways application.Gateways
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := memory.NewStore()
	gateways := application.Gateways{
		Customers:  store.Customers(),
		Movies:     store.Movies(),
		Screenings: store.Screenings(),
		Tickets:    store.Tickets(),
	}
	service := cinemaobs.New(application.NewService(gateways))
	cfg := bootstrap.Config{Port: "8080", JWTSecret: pacttest.TokenSecret, Environment: "test"}
	router := api.NewRouter(cfg, service, cinemaworkflows.NewInlineTicketWorkflows(service), nil)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{store: store, gateways: gateways, server: server}
}

func (a *contractProviderApp) seed(t testing.TB) {
	t.Helper()
	seeded, err := migrations.Seed(context.Background(), a.gateways, time.Now())
	require.NoError(t, err)
	require.True(t, seeded)
}
