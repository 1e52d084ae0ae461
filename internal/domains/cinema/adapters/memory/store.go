package memory

import (
	"sync"
	"time"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// Store keeps every cinema table behind one lock so that cascading deletes are atomic.
// It mirrors the relational schema: foreign keys are checked on write and deleting a
// movie, screening or customer removes its dependents.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	customers  *table[domain.Customer]
	movies     *table[domain.Movie]
	screenings *table[domain.Screening]
	tickets    *table[domain.Ticket]

	keys map[string]ports.IdempotencyRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{now: time.Now, keys: make(map[string]ports.IdempotencyRecord)}
	s.customers = newTable("customers",
		func(c *domain.Customer) *domain.Base { return &c.Base },
		func(c *domain.Customer) { c.Tickets = nil })
	s.movies = newTable("movies",
		func(m *domain.Movie) *domain.Base { return &m.Base },
		func(m *domain.Movie) { m.Screenings = nil })
	s.screenings = newTable("screenings",
		func(sc *domain.Screening) *domain.Base { return &sc.Base },
		func(sc *domain.Screening) { sc.Movie, sc.Tickets = nil, nil })
	s.tickets = newTable("tickets",
		func(t *domain.Ticket) *domain.Base { return &t.Base },
		func(t *domain.Ticket) { t.Customer, t.Screening = nil, nil })

	s.customers.unique = func(existing, candidate *domain.Customer) bool { return existing.Name == candidate.Name }
	s.movies.unique = func(existing, candidate *domain.Movie) bool { return existing.Title == candidate.Title }

	s.screenings.references = func(sc *domain.Screening) bool { return s.movies.has(sc.MovieID) }
	s.tickets.references = func(t *domain.Ticket) bool {
		return s.customers.has(t.CustomerID) && s.screenings.has(t.ScreeningID)
	}

	s.movies.cascade = func(id int64) {
		for _, sc := range s.screenings.where(func(sc *domain.Screening) bool { return sc.MovieID == id }) {
			s.screenings.remove(sc.ID)
			s.screenings.cascade(sc.ID)
		}
	}
	s.screenings.cascade = func(id int64) {
		for _, t := range s.tickets.where(func(t *domain.Ticket) bool { return t.ScreeningID == id }) {
			s.tickets.remove(t.ID)
			s.tickets.cascade(t.ID)
		}
	}
	s.customers.cascade = func(id int64) {
		for _, t := range s.tickets.where(func(t *domain.Ticket) bool { return t.CustomerID == id }) {
			s.tickets.remove(t.ID)
			s.tickets.cascade(t.ID)
		}
	}
	s.tickets.cascade = func(id int64) {
		for key, record := range s.keys {
			if record.TicketID == id {
				delete(s.keys, key)
			}
		}
	}

	s.customers.includes = map[ports.Include]func(*domain.Customer){
		ports.IncludeTickets: func(c *domain.Customer) {
			c.Tickets = values(s.tickets.where(func(t *domain.Ticket) bool { return t.CustomerID == c.ID }))
		},
	}
	s.movies.includes = map[ports.Include]func(*domain.Movie){
		ports.IncludeScreenings: func(m *domain.Movie) {
			m.Screenings = values(s.screenings.where(func(sc *domain.Screening) bool { return sc.MovieID == m.ID }))
		},
	}
	s.screenings.includes = map[ports.Include]func(*domain.Screening){
		ports.IncludeMovie: func(sc *domain.Screening) {
			sc.Movie = s.movies.get(sc.MovieID)
		},
		ports.IncludeTickets: func(sc *domain.Screening) {
			sc.Tickets = values(s.tickets.where(func(t *domain.Ticket) bool { return t.ScreeningID == sc.ID }))
		},
	}
	s.tickets.includes = map[ports.Include]func(*domain.Ticket){
		ports.IncludeCustomer: func(t *domain.Ticket) {
			t.Customer = s.customers.get(t.CustomerID)
		},
		ports.IncludeScreening: func(t *domain.Ticket) {
			t.Screening = s.screenings.get(t.ScreeningID)
		},
	}
	return s
}

// WithClock overrides the time source used to stamp unset timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
	return s
}

// Customers returns the customer gateway.
func (s *Store) Customers() *Gateway[domain.Customer] { return &Gateway[domain.Customer]{store: s, table: s.customers} }

// Movies returns the movie gateway.
func (s *Store) Movies() *Gateway[domain.Movie] { return &Gateway[domain.Movie]{store: s, table: s.movies} }

// Screenings returns the screening gateway.
func (s *Store) Screenings() *Gateway[domain.Screening] {
	return &Gateway[domain.Screening]{store: s, table: s.screenings}
}

// Tickets returns the ticket gateway.
func (s *Store) Tickets() *Gateway[domain.Ticket] { return &Gateway[domain.Ticket]{store: s, table: s.tickets} }

// Reset drops every row and idempotency key and restarts identifiers.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.reset()
	s.movies.reset()
	s.screenings.reset()
	s.tickets.reset()
	s.keys = make(map[string]ports.IdempotencyRecord)
}

func values[T any](rows []*T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}
