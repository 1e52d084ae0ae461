package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/memory"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
	platformobservability "github.com/Apurer/cinema-booking-api/internal/platform/observability"
)

func TestBuildGateways_FallsBackToMemory(t *testing.T) {
	gw := BuildGateways(nil)

	assert.IsType(t, &memory.Gateway[domain.Customer]{}, gw.Customers)
	require.NotNil(t, gw.Movies)
	require.NotNil(t, gw.Screenings)
	require.NotNil(t, gw.Tickets)

	customers, err := gw.Customers.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestBuildStores_MemoryKeysShareTheTicketTable(t *testing.T) {
	ctx := context.Background()
	gw, keys := BuildStores(nil)
	assert.IsType(t, &memory.IdempotencyStore{}, keys)

	customer, err := gw.Customers.Add(ctx, &domain.Customer{Name: "Lionel Messi", Email: "messi@example.com", Phone: "+5491112345678"})
	require.NoError(t, err)
	movie, err := gw.Movies.Add(ctx, &domain.Movie{Title: "Inception", Rating: "PG-13", Description: "Dreams.", RuntimeMins: 148})
	require.NoError(t, err)
	screening, err := gw.Screenings.Add(ctx, &domain.Screening{MovieID: movie.ID, ScreenNumber: 5, Capacity: 40, StartsAt: time.Now()})
	require.NoError(t, err)
	ticket, err := gw.Tickets.Add(ctx, &domain.Ticket{CustomerID: customer.ID, ScreeningID: screening.ID, NumSeats: 2})
	require.NoError(t, err)

	_, err = keys.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h1", TicketID: ticket.ID})
	require.NoError(t, err)
}

func TestStart_InMemoryWithSeed(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "127.0.0.1:1")
	cfg := Config{Port: "8080", SeedData: true, Environment: "test", TemporalDisabled: true}

	rt, err := Start(context.Background(), "cinema-test", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })

	assert.Nil(t, rt.DB)
	ctx := authz.WithIdentity(context.Background(), authz.Identity{Subject: "root", Role: authz.RoleAdmin})
	movies, err := rt.Service.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 3)
}

func TestRuntime_CloseRunsInReverse(t *testing.T) {
	var order []int
	rt := &Runtime{}
	rt.AddCloser(func(context.Context) error { order = append(order, 1); return nil })
	rt.AddCloser(func(context.Context) error { order = append(order, 2); return errors.New("boom") })

	err := rt.Close(context.Background())

	assert.EqualError(t, err, "boom")
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, rt.Close(context.Background()))
}

func TestConnectTemporal_Disabled(t *testing.T) {
	_, err := ConnectTemporal(Config{TemporalDisabled: true}, &platformobservability.Instruments{})
	assert.Error(t, err)
}
