package ports

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an absent row. It is not a storage failure.
	ErrNotFound = errors.New("record not found")
	// ErrStorage marks any failure of the underlying store.
	ErrStorage = errors.New("storage failure")
	// ErrDuplicateKey marks a unique constraint violation reported by the store.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingReference marks a foreign key violation reported by the store.
	ErrMissingReference = errors.New("missing reference")
	// ErrUnknownInclude is returned for a relation the entity does not have.
	ErrUnknownInclude = errors.New("unknown relation")
)

// Include names a relation to load eagerly through GetWithIncludes.
type Include string

const (
	IncludeScreenings Include = "Screenings"
	IncludeTickets    Include = "Tickets"
	IncludeMovie      Include = "Movie"
	IncludeCustomer   Include = "Customer"
	IncludeScreening  Include = "Screening"
)

// Gateway is the persistence contract shared by every cinema entity.
// Entities returned are copies owned by the caller.
type Gateway[T any] interface {
	// GetAll returns every row; an empty slice is not an error.
	GetAll(ctx context.Context) ([]*T, error)
	// GetByID returns ErrNotFound when the row does not exist.
	GetByID(ctx context.Context, id int64) (*T, error)
	// Add persists a new row, assigning its id and any unset timestamps.
	Add(ctx context.Context, entity *T) (*T, error)
	// Update replaces the full row identified by id. It performs no field merging.
	Update(ctx context.Context, id int64, entity *T) (*T, error)
	// Delete removes the row and its dependents, returning the removed row.
	Delete(ctx context.Context, id int64) (*T, error)
	// GetWithIncludes returns every row with the named relations loaded.
	GetWithIncludes(ctx context.Context, includes ...Include) ([]*T, error)
}

// StorageError wraps a failure raised by the store. It matches ErrStorage and, when
// the store classified the failure, ErrDuplicateKey or ErrMissingReference.
type StorageError struct {
	Op     string
	Entity string
	Kind   error
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() []error {
	errs := []error{ErrStorage}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
