package domain

import (
	"errors"
	"unicode/utf8"
)

// MaxDescriptionLength bounds a movie description, counted in characters.
const MaxDescriptionLength = 500

var (
	ErrMovieTitleRequired       = errors.New("movie title is required")
	ErrMovieRatingRequired      = errors.New("movie rating is required")
	ErrMovieDescriptionRequired = errors.New("movie description is required")
	ErrMovieDescriptionTooLong  = errors.New("movie description is too long")
	ErrMovieRuntimeInvalid      = errors.New("movie runtime must be positive")
)

// Movie owns its screenings; deleting a movie removes them.
type Movie struct {
	Base
	Title       string
	Rating      string
	Description string
	RuntimeMins int

	Screenings []Screening
}

// Validate checks the structural invariants of a movie.
func (m *Movie) Validate() error {
	switch {
	case blank(m.Title):
		return ErrMovieTitleRequired
	case blank(m.Rating):
		return ErrMovieRatingRequired
	case blank(m.Description):
		return ErrMovieDescriptionRequired
	case utf8.RuneCountInString(m.Description) > MaxDescriptionLength:
		return ErrMovieDescriptionTooLong
	case m.RuntimeMins <= 0:
		return ErrMovieRuntimeInvalid
	}
	return nil
}
