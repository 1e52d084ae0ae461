package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_TouchIsStrictlyIncreasing(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var b Base
	b.Stamp(now)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	b.Touch(now)
	assert.True(t, b.UpdatedAt.After(now))

	previous := b.UpdatedAt
	b.Touch(now.Add(-time.Hour))
	assert.True(t, b.UpdatedAt.After(previous))

	b.Touch(now.Add(time.Hour))
	assert.Equal(t, now.Add(time.Hour), b.UpdatedAt)
	assert.Equal(t, now, b.CreatedAt)
}

func TestCustomer_Validate(t *testing.T) {
	valid := Customer{Name: "Wayne Rooney", Email: "wazza@example.com", Phone: "+447700900123"}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "\t"
	assert.ErrorIs(t, noName.Validate(), ErrCustomerNameRequired)

	badPhone := valid
	badPhone.Phone = "0770-090"
	assert.ErrorIs(t, badPhone.Validate(), ErrCustomerPhoneInvalid)
}

func TestMovie_Validate(t *testing.T) {
	valid := Movie{Title: "The Matrix", Rating: "R", Description: "Red pill.", RuntimeMins: 136}
	require.NoError(t, valid.Validate())

	long := valid
	long.Description = strings.Repeat("é", MaxDescriptionLength)
	assert.NoError(t, long.Validate())
	long.Description += "é"
	assert.ErrorIs(t, long.Validate(), ErrMovieDescriptionTooLong)

	zero := valid
	zero.RuntimeMins = 0
	assert.ErrorIs(t, zero.Validate(), ErrMovieRuntimeInvalid)
}

func TestScreening_BelongsTo(t *testing.T) {
	s := &Screening{MovieID: 3}
	assert.True(t, s.BelongsTo(3))
	assert.False(t, s.BelongsTo(4))

	var missing *Screening
	assert.False(t, missing.BelongsTo(3))
}

func TestNewTicket(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	ticket, err := NewTicket(1, 2, MaxSeatsPerBooking, now)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ticket.CreatedAt.Location())
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)

	_, err = NewTicket(1, 2, MaxSeatsPerBooking+1, now)
	assert.ErrorIs(t, err, ErrSeatCountInvalid)

	_, err = NewTicket(0, 2, 1, now)
	assert.ErrorIs(t, err, ErrInvalidReference)
}
