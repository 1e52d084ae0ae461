package postgres

import (
	"time"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// Row holds the columns every cinema table shares. Timestamps are written explicitly
// by callers, so GORM's automatic time tracking is switched off.
type Row struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func rowFrom(b domain.Base) Row {
	return Row{ID: b.ID, CreatedAt: b.CreatedAt.UTC(), UpdatedAt: b.UpdatedAt.UTC()}
}

func (r Row) toBase() domain.Base {
	return domain.Base{ID: r.ID, CreatedAt: r.CreatedAt.UTC(), UpdatedAt: r.UpdatedAt.UTC()}
}

type customerRecord struct {
	Row
	Name    string         `gorm:"column:name;not null;uniqueIndex"`
	Email   string         `gorm:"column:email;not null"`
	Phone   string         `gorm:"column:phone;type:varchar(16);not null"`
	Tickets []ticketRecord `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (customerRecord) TableName() string { return "customers" }

type movieRecord struct {
	Row
	Title       string            `gorm:"column:title;not null;uniqueIndex"`
	Rating      string            `gorm:"column:rating;not null"`
	Description string            `gorm:"column:description;type:varchar(500);not null"`
	RuntimeMins int               `gorm:"column:runtime_mins;not null"`
	Screenings  []screeningRecord `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

func (movieRecord) TableName() string { return "movies" }

type screeningRecord struct {
	Row
	MovieID      int64          `gorm:"column:movie_id;not null;index"`
	ScreenNumber int            `gorm:"column:screen_number;not null"`
	Capacity     int            `gorm:"column:capacity;not null"`
	StartsAt     time.Time      `gorm:"column:starts_at;not null"`
	Movie        *movieRecord   `gorm:"foreignKey:MovieID"`
	Tickets      []ticketRecord `gorm:"foreignKey:ScreeningID;constraint:OnDelete:CASCADE"`
}

func (screeningRecord) TableName() string { return "screenings" }

type ticketRecord struct {
	Row
	CustomerID  int64            `gorm:"column:customer_id;not null;index"`
	ScreeningID int64            `gorm:"column:screening_id;not null;index"`
	NumSeats    int              `gorm:"column:num_seats;not null"`
	Customer    *customerRecord  `gorm:"foreignKey:CustomerID"`
	Screening   *screeningRecord `gorm:"foreignKey:ScreeningID"`
}

func (ticketRecord) TableName() string { return "tickets" }

// Models lists the records in dependency order for schema migration.
func Models() []any {
	return []any{&customerRecord{}, &movieRecord{}, &screeningRecord{}, &ticketRecord{}, &idempotencyRecord{}}
}

func customerToRecord(c *domain.Customer) *customerRecord {
	return &customerRecord{Row: rowFrom(c.Base), Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (r *customerRecord) toDomain() *domain.Customer {
	c := &domain.Customer{Base: r.Row.toBase(), Name: r.Name, Email: r.Email, Phone: r.Phone}
	if r.Tickets != nil {
		c.Tickets = ticketsToDomain(r.Tickets)
	}
	return c
}

func movieToRecord(m *domain.Movie) *movieRecord {
	return &movieRecord{
		Row:         rowFrom(m.Base),
		Title:       m.Title,
		Rating:      m.Rating,
		Description: m.Description,
		RuntimeMins: m.RuntimeMins,
	}
}

func (r *movieRecord) toDomain() *domain.Movie {
	m := &domain.Movie{
		Base:        r.Row.toBase(),
		Title:       r.Title,
		Rating:      r.Rating,
		Description: r.Description,
		RuntimeMins: r.RuntimeMins,
	}
	if r.Screenings != nil {
		m.Screenings = make([]domain.Screening, 0, len(r.Screenings))
		for i := range r.Screenings {
			m.Screenings = append(m.Screenings, *r.Screenings[i].toDomain())
		}
	}
	return m
}

func screeningToRecord(s *domain.Screening) *screeningRecord {
	return &screeningRecord{
		Row:          rowFrom(s.Base),
		MovieID:      s.MovieID,
		ScreenNumber: s.ScreenNumber,
		Capacity:     s.Capacity,
		StartsAt:     s.StartsAt.UTC(),
	}
}

func (r *screeningRecord) toDomain() *domain.Screening {
	s := &domain.Screening{
		Base:         r.Row.toBase(),
		MovieID:      r.MovieID,
		ScreenNumber: r.ScreenNumber,
		Capacity:     r.Capacity,
		StartsAt:     r.StartsAt.UTC(),
	}
	if r.Movie != nil {
		s.Movie = r.Movie.toDomain()
	}
	if r.Tickets != nil {
		s.Tickets = ticketsToDomain(r.Tickets)
	}
	return s
}

func ticketToRecord(t *domain.Ticket) *ticketRecord {
	return &ticketRecord{
		Row:         rowFrom(t.Base),
		CustomerID:  t.CustomerID,
		ScreeningID: t.ScreeningID,
		NumSeats:    t.NumSeats,
	}
}

func (r *ticketRecord) toDomain() *domain.Ticket {
	t := &domain.Ticket{
		Base:        r.Row.toBase(),
		CustomerID:  r.CustomerID,
		ScreeningID: r.ScreeningID,
		NumSeats:    r.NumSeats,
	}
	if r.Customer != nil {
		t.Customer = r.Customer.toDomain()
	}
	if r.Screening != nil {
		t.Screening = r.Screening.toDomain()
	}
	return t
}

func ticketsToDomain(records []ticketRecord) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(records))
	for i := range records {
		out = append(out, *records[i].toDomain())
	}
	return out
}
