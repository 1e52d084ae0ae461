package mapper

import (
	"time"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// CustomerRequest is the create payload for a customer.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerPatchRequest preserves field presence; a missing or null field stays nil.
type CustomerPatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// MovieRequest is the create payload for a movie.
type MovieRequest struct {
	Title       string `json:"title"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	RuntimeMins int    `json:"runtimeMins"`
}

// MoviePatchRequest preserves field presence for partial movie updates.
type MoviePatchRequest struct {
	Title       *string `json:"title"`
	Rating      *string `json:"rating"`
	Description *string `json:"description"`
	RuntimeMins *int    `json:"runtimeMins"`
}

// ScreeningRequest is the payload for scheduling a screening.
type ScreeningRequest struct {
	ScreenNumber int       `json:"screenNumber"`
	Capacity     int       `json:"capacity"`
	StartsAt     time.Time `json:"startsAt"`
}

// TicketRequest is the booking payload. The customer and screening come from the path.
type TicketRequest struct {
	NumSeats int `json:"numSeats"`
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Movie is the HTTP representation of a movie.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Rating      string    `json:"rating"`
	Description string    `json:"description"`
	RuntimeMins int       `json:"runtimeMins"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Screening is the HTTP representation of a screening.
type Screening struct {
	ID           int64     `json:"id"`
	MovieID      int64     `json:"movieId"`
	ScreenNumber int       `json:"screenNumber"`
	Capacity     int       `json:"capacity"`
	StartsAt     time.Time `json:"startsAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Ticket is the HTTP representation of a ticket.
type Ticket struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ScreeningID int64     `json:"screeningId"`
	NumSeats    int       `json:"numSeats"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToCustomerInput converts a create payload.
func ToCustomerInput(req CustomerRequest) types.CustomerInput {
	return types.CustomerInput{Name: req.Name, Email: req.Email, Phone: req.Phone}
}

// ToCustomerPatch converts a partial update payload.
func ToCustomerPatch(req CustomerPatchRequest) types.CustomerPatch {
	return types.CustomerPatch{Name: req.Name, Email: req.Email, Phone: req.Phone}
}

// ToMovieInput converts a create payload.
func ToMovieInput(req MovieRequest) types.MovieInput {
	return types.MovieInput{
		Title:       req.Title,
		Rating:      req.Rating,
		Description: req.Description,
		RuntimeMins: req.RuntimeMins,
	}
}

// ToMoviePatch converts a partial update payload.
func ToMoviePatch(req MoviePatchRequest) types.MoviePatch {
	return types.MoviePatch{
		Title:       req.Title,
		Rating:      req.Rating,
		Description: req.Description,
		RuntimeMins: req.RuntimeMins,
	}
}

// ToScreeningInput converts a screening payload.
func ToScreeningInput(req ScreeningRequest) types.ScreeningInput {
	return types.ScreeningInput{ScreenNumber: req.ScreenNumber, Capacity: req.Capacity, StartsAt: req.StartsAt}
}

// ToBookTicketInput combines the path references with the booking payload.
func ToBookTicketInput(customerID, screeningID int64, req TicketRequest, idempotencyKey string) types.BookTicketInput {
	return types.BookTicketInput{
		CustomerID:     customerID,
		ScreeningID:    screeningID,
		NumSeats:       req.NumSeats,
		IdempotencyKey: idempotencyKey,
	}
}

func FromCustomer(c *domain.Customer) *Customer {
	if c == nil {
		return nil
	}
	return &Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromMovie(m *domain.Movie) *Movie {
	if m == nil {
		return nil
	}
	return &Movie{
		ID:          m.ID,
		Title:       m.Title,
		Rating:      m.Rating,
		Description: m.Description,
		RuntimeMins: m.RuntimeMins,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromScreening(s *domain.Screening) *Screening {
	if s == nil {
		return nil
	}
	return &Screening{
		ID:           s.ID,
		MovieID:      s.MovieID,
		ScreenNumber: s.ScreenNumber,
		Capacity:     s.Capacity,
		StartsAt:     s.StartsAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func FromTicket(t *domain.Ticket) *Ticket {
	if t == nil {
		return nil
	}
	return &Ticket{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		ScreeningID: t.ScreeningID,
		NumSeats:    t.NumSeats,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromCustomers maps a list, preserving order.
func FromCustomers(list []*domain.Customer) []*Customer {
	out := make([]*Customer, 0, len(list))
	for _, c := range list {
		out = append(out, FromCustomer(c))
	}
	return out
}

// FromMovies maps a list, preserving order.
func FromMovies(list []*domain.Movie) []*Movie {
	out := make([]*Movie, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovie(m))
	}
	return out
}

// FromScreenings maps a list, preserving order.
func FromScreenings(list []*domain.Screening) []*Screening {
	out := make([]*Screening, 0, len(list))
	for _, s := range list {
		out = append(out, FromScreening(s))
	}
	return out
}

// FromTickets maps a list, preserving order.
func FromTickets(list []*domain.Ticket) []*Ticket {
	out := make([]*Ticket, 0, len(list))
	for _, t := range list {
		out = append(out, FromTicket(t))
	}
	return out
}
