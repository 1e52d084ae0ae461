package domain

import (
	"errors"
	"time"
)

// MaxSeatsPerBooking is the per-request seat ceiling.
const MaxSeatsPerBooking = 10

var ErrSeatCountInvalid = errors.New("seat count out of range")

// Ticket reserves seats for a customer at a screening. Both references are fixed at
// creation and tickets are never updated.
type Ticket struct {
	Base
	CustomerID  int64
	ScreeningID int64
	NumSeats    int

	Customer  *Customer
	Screening *Screening
}

// NewTicket builds an unsaved ticket stamped with now.
func NewTicket(customerID, screeningID int64, numSeats int, now time.Time) (*Ticket, error) {
	t := &Ticket{CustomerID: customerID, ScreeningID: screeningID, NumSeats: numSeats}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Stamp(now)
	return t, nil
}

// Validate checks the structural invariants of a ticket.
func (t *Ticket) Validate() error {
	if t.CustomerID <= 0 || t.ScreeningID <= 0 {
		return ErrInvalidReference
	}
	if t.NumSeats < 1 || t.NumSeats > MaxSeatsPerBooking {
		return ErrSeatCountInvalid
	}
	return nil
}
