package migrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/memory"
	cinemapostgres "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/persistence/postgres"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

var seedTime = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func memoryGateways() application.Gateways {
	store := memory.NewStore()
	return application.Gateways{
		Customers:  store.Customers(),
		Movies:     store.Movies(),
		Screenings: store.Screenings(),
		Tickets:    store.Tickets(),
	}
}

func TestSeed_LoadsCatalogueOnce(t *testing.T) {
	ctx := context.Background()
	gw := memoryGateways()

	seeded, err := Seed(ctx, gw, seedTime)
	require.NoError(t, err)
	assert.True(t, seeded)

	customers, err := gw.Customers.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Lionel Messi", customers[0].Name)

	movies, err := gw.Movies.GetWithIncludes(ctx, ports.IncludeScreenings)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, "Inception", movies[0].Title)
	require.Len(t, movies[0].Screenings, 1)
	assert.Equal(t, 5, movies[0].Screenings[0].ScreenNumber)
	assert.Equal(t, 40, movies[0].Screenings[0].Capacity)

	tickets, err := gw.Tickets.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, 2, tickets[0].NumSeats)
	assert.Equal(t, 4, tickets[1].NumSeats)

	seeded, err = Seed(ctx, gw, seedTime)
	require.NoError(t, err)
	assert.False(t, seeded)
	tickets, err = gw.Tickets.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
}

func TestSeed_SkipsWhenMoviesExist(t *testing.T) {
	ctx := context.Background()
	gw := memoryGateways()
	movie := &domain.Movie{Title: "Heat", Rating: "R", Description: "Cops and robbers.", RuntimeMins: 170}
	movie.Stamp(seedTime)
	_, err := gw.Movies.Add(ctx, movie)
	require.NoError(t, err)

	seeded, err := Seed(ctx, gw, seedTime)

	require.NoError(t, err)
	assert.False(t, seeded)
	customers, err := gw.Customers.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestRun_MigratesAndSeedsThroughGORM(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Run(db))
	require.NoError(t, Run(nil))

	gw := application.Gateways{
		Customers:  cinemapostgres.NewCustomers(db),
		Movies:     cinemapostgres.NewMovies(db),
		Screenings: cinemapostgres.NewScreenings(db),
		Tickets:    cinemapostgres.NewTickets(db),
	}
	seeded, err := Seed(context.Background(), gw, seedTime)
	require.NoError(t, err)
	assert.True(t, seeded)

	screenings, err := gw.Screenings.GetWithIncludes(context.Background(), ports.IncludeTickets)
	require.NoError(t, err)
	require.Len(t, screenings, 3)
	assert.Len(t, screenings[0].Tickets, 2)
}
