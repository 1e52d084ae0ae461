package domain

import (
	"errors"
	"time"
)

var (
	ErrScreenNumberInvalid = errors.New("screen number must be positive")
	ErrCapacityInvalid     = errors.New("capacity must be positive")
	ErrStartsAtRequired    = errors.New("screening start time is required")
)

// Screening is a scheduled showing of a movie. Capacity is informational only:
// bookings are not checked against it.
type Screening struct {
	Base
	MovieID      int64
	ScreenNumber int
	Capacity     int
	StartsAt     time.Time

	Movie   *Movie
	Tickets []Ticket
}

// BelongsTo reports whether the screening is scheduled for the given movie.
func (s *Screening) BelongsTo(movieID int64) bool {
	return s != nil && s.MovieID == movieID
}

// Validate checks the structural invariants of a screening.
func (s *Screening) Validate() error {
	switch {
	case s.MovieID <= 0:
		return ErrInvalidReference
	case s.ScreenNumber <= 0:
		return ErrScreenNumberInvalid
	case s.Capacity <= 0:
		return ErrCapacityInvalid
	case s.StartsAt.IsZero():
		return ErrStartsAtRequired
	}
	return nil
}
