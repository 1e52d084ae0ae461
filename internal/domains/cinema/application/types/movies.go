package types

import "time"

// MovieInput is the payload for creating a movie.
type MovieInput struct {
	Title       string `validate:"notblank"`
	Rating      string `validate:"notblank"`
	Description string `validate:"notblank,max=500"`
	RuntimeMins int    `validate:"gt=0"`
}

// MoviePatch is the payload for a partial movie update.
type MoviePatch struct {
	Title       *string `validate:"omitnil,notblank"`
	Rating      *string `validate:"omitnil,notblank"`
	Description *string `validate:"omitnil,notblank,max=500"`
	RuntimeMins *int    `validate:"omitnil,gt=0"`
}

// ScreeningInput is the payload for scheduling a screening under a movie.
type ScreeningInput struct {
	ScreenNumber int       `validate:"gt=0"`
	Capacity     int       `validate:"gt=0"`
	StartsAt     time.Time `validate:"required"`
}
