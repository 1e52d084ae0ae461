package ports

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// Service exposes the cinema use cases to transports and workflows.
type Service interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	CreateCustomer(ctx context.Context, input types.CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (*domain.Customer, error)

	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	ListMovies(ctx context.Context) ([]*domain.Movie, error)
	CreateMovie(ctx context.Context, input types.MovieInput) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch types.MoviePatch) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, id int64) (*domain.Movie, error)

	ListScreenings(ctx context.Context, movieID int64) ([]*domain.Screening, error)
	GetScreening(ctx context.Context, movieID, screeningID int64) (*domain.Screening, error)
	CreateScreening(ctx context.Context, movieID int64, input types.ScreeningInput) (*domain.Screening, error)

	BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error)
	ListTickets(ctx context.Context, customerID, screeningID int64) ([]*domain.Ticket, error)
}
