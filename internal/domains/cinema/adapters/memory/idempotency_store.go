package memory

import (
	"context"
	"errors"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps booking keys next to the tickets they point at. Keys share the
// Store lock and are dropped together with their ticket, so a replay never resolves to a
// ticket that a cascade already removed.
type IdempotencyStore struct {
	store *Store
}

// Idempotency returns the key store bound to this Store's tickets.
func (s *Store) Idempotency() *IdempotencyStore { return &IdempotencyStore{store: s} }

// Get returns the record for key, or nil when the key is unknown.
func (i *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()
	record, ok := i.store.keys[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Save binds key to an existing ticket. Reusing a key for another request or ticket
// returns the stored record with ports.ErrIdempotencyConflict.
func (i *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	i.store.mu.Lock()
	defer i.store.mu.Unlock()

	if existing, ok := i.store.keys[record.Key]; ok {
		if existing.RequestHash != record.RequestHash || existing.TicketID != record.TicketID {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	if !i.store.tickets.has(record.TicketID) {
		return nil, &ports.StorageError{
			Op:     "add",
			Entity: "ticket_idempotency_keys",
			Kind:   ports.ErrMissingReference,
			Err:    errors.New("foreign key violation"),
		}
	}
	record.CreatedAt = i.store.now().UTC()
	record.UpdatedAt = record.CreatedAt
	i.store.keys[record.Key] = record
	return &record, nil
}
