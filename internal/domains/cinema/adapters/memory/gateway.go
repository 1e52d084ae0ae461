package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

var (
	_ ports.Gateway[domain.Customer]  = (*Gateway[domain.Customer])(nil)
	_ ports.Gateway[domain.Movie]     = (*Gateway[domain.Movie])(nil)
	_ ports.Gateway[domain.Screening] = (*Gateway[domain.Screening])(nil)
	_ ports.Gateway[domain.Ticket]    = (*Gateway[domain.Ticket])(nil)
)

// Gateway serves one table of a Store through the generic persistence contract.
type Gateway[T any] struct {
	store *Store
	table *table[T]
}

// GetAll returns every row ordered by id.
func (g *Gateway[T]) GetAll(_ context.Context) ([]*T, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return g.table.where(nil), nil
}

// GetByID returns a copy of the row or ports.ErrNotFound.
func (g *Gateway[T]) GetByID(_ context.Context, id int64) (*T, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	row := g.table.get(id)
	if row == nil {
		return nil, ports.ErrNotFound
	}
	return row, nil
}

// Add assigns the next id and stamps unset timestamps.
func (g *Gateway[T]) Add(_ context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, g.storageError("add", nil, errors.New("nil entity"))
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if g.table.references != nil && !g.table.references(entity) {
		return nil, g.storageError("add", ports.ErrMissingReference, errors.New("foreign key violation"))
	}
	if g.table.conflicts(entity, 0) {
		return nil, g.storageError("add", ports.ErrDuplicateKey, errors.New("unique constraint violation"))
	}
	g.table.nextID++
	id := g.table.nextID
	row := *entity
	base := g.table.base(&row)
	base.ID = id
	now := g.store.now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = base.CreatedAt
	}
	saved := g.table.put(id, &row)
	return &saved, nil
}

// Update replaces the row, keeping its id and creation time.
func (g *Gateway[T]) Update(_ context.Context, id int64, entity *T) (*T, error) {
	if entity == nil {
		return nil, g.storageError("update", nil, errors.New("nil entity"))
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	current := g.table.get(id)
	if current == nil {
		return nil, ports.ErrNotFound
	}
	if g.table.references != nil && !g.table.references(entity) {
		return nil, g.storageError("update", ports.ErrMissingReference, errors.New("foreign key violation"))
	}
	if g.table.conflicts(entity, id) {
		return nil, g.storageError("update", ports.ErrDuplicateKey, errors.New("unique constraint violation"))
	}
	row := *entity
	base := g.table.base(&row)
	base.ID = id
	base.CreatedAt = g.table.base(current).CreatedAt
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = g.store.now().UTC()
	}
	saved := g.table.put(id, &row)
	return &saved, nil
}

// Delete removes the row and cascades to its dependents.
func (g *Gateway[T]) Delete(_ context.Context, id int64) (*T, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	removed := g.table.get(id)
	if removed == nil {
		return nil, ports.ErrNotFound
	}
	g.table.remove(id)
	g.table.cascade(id)
	return removed, nil
}

// GetWithIncludes returns every row with the named relations attached.
func (g *Gateway[T]) GetWithIncludes(_ context.Context, includes ...ports.Include) ([]*T, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	loaders := make([]func(*T), 0, len(includes))
	for _, inc := range includes {
		load, ok := g.table.includes[inc]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no relation %q", ports.ErrUnknownInclude, g.table.name, inc)
		}
		loaders = append(loaders, load)
	}
	rows := g.table.where(nil)
	for _, row := range rows {
		for _, load := range loaders {
			load(row)
		}
	}
	return rows, nil
}

func (g *Gateway[T]) storageError(op string, kind, err error) error {
	return &ports.StorageError{Op: op, Entity: g.table.name, Kind: kind, Err: err}
}
