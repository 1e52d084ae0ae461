package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

func newIdempotencyFixture(t *testing.T) (*IdempotencyStore, fixture) {
	t.Helper()
	db := openSQLite(t)
	return NewIdempotencyStore(db), fixture{
		customers:  NewCustomers(db),
		movies:     NewMovies(db),
		screenings: NewScreenings(db),
		tickets:    NewTickets(db),
	}
}

func TestIdempotencyStore_SaveAndReplay(t *testing.T) {
	ctx := context.Background()
	store, f := newIdempotencyFixture(t)
	_, _, _, ticket := seedBooking(t, f)

	missing, err := store.Get(ctx, "retry-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "retry-1", RequestHash: "abc", TicketID: ticket.ID})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, saved.TicketID)

	replayed, err := store.Save(ctx, ports.IdempotencyRecord{Key: "retry-1", RequestHash: "abc", TicketID: ticket.ID})
	require.NoError(t, err)
	assert.Equal(t, "abc", replayed.RequestHash)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{Key: "retry-1", RequestHash: "def", TicketID: ticket.ID})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, existing)
	assert.Equal(t, "abc", existing.RequestHash)
}

func TestIdempotencyStore_KeysFollowTheirTicket(t *testing.T) {
	ctx := context.Background()
	store, f := newIdempotencyFixture(t)
	customer, _, _, ticket := seedBooking(t, f)

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "retry-1", RequestHash: "abc", TicketID: 999})
	assert.ErrorIs(t, err, ports.ErrMissingReference)

	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "retry-1", RequestHash: "abc", TicketID: ticket.ID})
	require.NoError(t, err)

	_, err = f.customers.Delete(ctx, customer.ID)
	require.NoError(t, err)

	gone, err := store.Get(ctx, "retry-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIdempotencyStore_NotConfigured(t *testing.T) {
	var store *IdempotencyStore

	_, err := store.Get(context.Background(), "k")

	assert.ErrorIs(t, err, ports.ErrStorage)
}
