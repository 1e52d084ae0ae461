package migrations

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	cinemapostgres "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/persistence/postgres"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// Run applies the cinema schema. Foreign keys cascade from customers and movies down to tickets.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(cinemapostgres.Models()...)
}

var seedCustomers = []domain.Customer{
	{Name: "Lionel Messi", Email: "messi@example.com", Phone: "+5491122334455"},
	{Name: "Cristiano Ronaldo", Email: "ronaldo@example.com", Phone: "+351912345678"},
	{Name: "Wayne Rooney", Email: "rooney@example.com", Phone: "+447700900123"},
}

var seedMovies = []struct {
	movie    domain.Movie
	screen   int
	capacity int
	startsAt time.Duration
}{
	{domain.Movie{Title: "Inception", Rating: "PG-13", RuntimeMins: 148,
		Description: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea."}, 5, 40, 20 * time.Hour},
	{domain.Movie{Title: "The Matrix", Rating: "R", RuntimeMins: 136,
		Description: "A computer hacker learns about the true nature of his reality and his role in the war against its controllers."}, 3, 60, 44 * time.Hour},
	{domain.Movie{Title: "Interstellar", Rating: "PG-13", RuntimeMins: 169,
		Description: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival."}, 7, 30, 68 * time.Hour},
}

// Seed loads the demo catalogue through the gateways. It does nothing unless both
// customers and movies are empty, so it is safe to run on every start.
func Seed(ctx context.Context, gw application.Gateways, now time.Time) (bool, error) {
	customers, err := gw.Customers.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: list customers: %w", err)
	}
	movies, err := gw.Movies.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: list movies: %w", err)
	}
	if len(customers) > 0 || len(movies) > 0 {
		return false, nil
	}

	customerIDs := make([]int64, 0, len(seedCustomers))
	for _, c := range seedCustomers {
		customer := c
		customer.Stamp(now)
		added, err := gw.Customers.Add(ctx, &customer)
		if err != nil {
			return false, fmt.Errorf("seed: add customer %q: %w", c.Name, err)
		}
		customerIDs = append(customerIDs, added.ID)
	}

	day := now.UTC().Truncate(24 * time.Hour)
	screeningIDs := make([]int64, 0, len(seedMovies))
	for _, m := range seedMovies {
		movie := m.movie
		movie.Stamp(now)
		added, err := gw.Movies.Add(ctx, &movie)
		if err != nil {
			return false, fmt.Errorf("seed: add movie %q: %w", m.movie.Title, err)
		}
		screening := domain.Screening{MovieID: added.ID, ScreenNumber: m.screen, Capacity: m.capacity, StartsAt: day.Add(m.startsAt)}
		screening.Stamp(now)
		scheduled, err := gw.Screenings.Add(ctx, &screening)
		if err != nil {
			return false, fmt.Errorf("seed: add screening for %q: %w", m.movie.Title, err)
		}
		screeningIDs = append(screeningIDs, scheduled.ID)
	}

	bookings := []struct {
		customer int64
		seats    int
	}{{customerIDs[0], 2}, {customerIDs[1], 4}}
	for _, b := range bookings {
		ticket, err := domain.NewTicket(b.customer, screeningIDs[0], b.seats, now)
		if err != nil {
			return false, fmt.Errorf("seed: ticket: %w", err)
		}
		if _, err := gw.Tickets.Add(ctx, ticket); err != nil {
			return false, fmt.Errorf("seed: add ticket: %w", err)
		}
	}
	return true, nil
}
