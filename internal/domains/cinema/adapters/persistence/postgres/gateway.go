package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// mapping describes how one entity is stored.
type mapping[T any, R any] struct {
	table     string
	toRecord  func(*T) *R
	toDomain  func(*R) *T
	row       func(*R) *Row
	relations map[ports.Include]string
}

// Gateway persists one cinema entity through GORM. A single implementation serves all
// four entities; dependent rows are removed by ON DELETE CASCADE constraints.
type Gateway[T any, R any] struct {
	db  *gorm.DB
	m   mapping[T, R]
	now func() time.Time
}

// NewCustomers returns the customer gateway.
func NewCustomers(db *gorm.DB) ports.Gateway[domain.Customer] {
	return &Gateway[domain.Customer, customerRecord]{db: db, now: time.Now, m: mapping[domain.Customer, customerRecord]{
		table:     "customers",
		toRecord:  customerToRecord,
		toDomain:  (*customerRecord).toDomain,
		row:       func(r *customerRecord) *Row { return &r.Row },
		relations: map[ports.Include]string{ports.IncludeTickets: "Tickets"},
	}}
}

// NewMovies returns the movie gateway.
func NewMovies(db *gorm.DB) ports.Gateway[domain.Movie] {
	return &Gateway[domain.Movie, movieRecord]{db: db, now: time.Now, m: mapping[domain.Movie, movieRecord]{
		table:     "movies",
		toRecord:  movieToRecord,
		toDomain:  (*movieRecord).toDomain,
		row:       func(r *movieRecord) *Row { return &r.Row },
		relations: map[ports.Include]string{ports.IncludeScreenings: "Screenings"},
	}}
}

// NewScreenings returns the screening gateway.
func NewScreenings(db *gorm.DB) ports.Gateway[domain.Screening] {
	return &Gateway[domain.Screening, screeningRecord]{db: db, now: time.Now, m: mapping[domain.Screening, screeningRecord]{
		table:    "screenings",
		toRecord: screeningToRecord,
		toDomain: (*screeningRecord).toDomain,
		row:      func(r *screeningRecord) *Row { return &r.Row },
		relations: map[ports.Include]string{
			ports.IncludeMovie:   "Movie",
			ports.IncludeTickets: "Tickets",
		},
	}}
}

// NewTickets returns the ticket gateway.
func NewTickets(db *gorm.DB) ports.Gateway[domain.Ticket] {
	return &Gateway[domain.Ticket, ticketRecord]{db: db, now: time.Now, m: mapping[domain.Ticket, ticketRecord]{
		table:    "tickets",
		toRecord: ticketToRecord,
		toDomain: (*ticketRecord).toDomain,
		row:      func(r *ticketRecord) *Row { return &r.Row },
		relations: map[ports.Include]string{
			ports.IncludeCustomer:  "Customer",
			ports.IncludeScreening: "Screening",
		},
	}}
}

// GetAll returns every row ordered by id.
func (g *Gateway[T, R]) GetAll(ctx context.Context) ([]*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var records []R
	if err := g.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, g.wrap("get all", err)
	}
	return g.toDomainList(records), nil
}

// GetByID fetches a row or returns ports.ErrNotFound.
func (g *Gateway[T, R]) GetByID(ctx context.Context, id int64) (*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var record R
	if err := g.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, g.wrap("get", err)
	}
	return g.m.toDomain(&record), nil
}

// Add inserts a new row. The id is assigned by the database.
func (g *Gateway[T, R]) Add(ctx context.Context, entity *T) (*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, g.wrap("add", errors.New("entity is nil"))
	}
	record := g.m.toRecord(entity)
	row := g.m.row(record)
	row.ID = 0
	now := g.now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return nil, g.wrap("add", err)
	}
	return g.m.toDomain(record), nil
}

// Update overwrites every column of the row except id and created_at.
func (g *Gateway[T, R]) Update(ctx context.Context, id int64, entity *T) (*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, g.wrap("update", errors.New("entity is nil"))
	}
	record := g.m.toRecord(entity)
	row := g.m.row(record)
	row.ID = id
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = g.now().UTC()
	}
	var updated R
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(record).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(record)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, g.wrap("update", err)
	}
	return g.m.toDomain(&updated), nil
}

// Delete removes the row and returns it as it was before deletion.
func (g *Gateway[T, R]) Delete(ctx context.Context, id int64) (*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	var removed R
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(new(R), "id = ?", id).Error
	})
	if err != nil {
		return nil, g.wrap("delete", err)
	}
	return g.m.toDomain(&removed), nil
}

// GetWithIncludes returns every row with the named relations preloaded.
func (g *Gateway[T, R]) GetWithIncludes(ctx context.Context, includes ...ports.Include) ([]*T, error) {
	if err := g.ensureDB(); err != nil {
		return nil, err
	}
	query := g.db.WithContext(ctx)
	for _, inc := range includes {
		relation, ok := g.m.relations[inc]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no relation %q", ports.ErrUnknownInclude, g.m.table, inc)
		}
		query = query.Preload(relation, func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	}
	var records []R
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, g.wrap("get with includes", err)
	}
	return g.toDomainList(records), nil
}

func (g *Gateway[T, R]) toDomainList(records []R) []*T {
	out := make([]*T, 0, len(records))
	for i := range records {
		out = append(out, g.m.toDomain(&records[i]))
	}
	return out
}

func (g *Gateway[T, R]) ensureDB() error {
	if g == nil || g.db == nil {
		return &ports.StorageError{Op: "connect", Entity: "gateway", Err: errors.New("postgres gateway not configured")}
	}
	return nil
}

// wrap classifies a GORM error. Absence maps to ports.ErrNotFound, everything else to a
// StorageError. Constraint classification relies on gorm.Config.TranslateError.
func (g *Gateway[T, R]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	var kind error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		kind = ports.ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		kind = ports.ErrMissingReference
	}
	return &ports.StorageError{Op: op, Entity: g.m.table, Kind: kind, Err: err}
}
