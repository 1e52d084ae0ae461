package application

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// ListScreenings returns the screenings scheduled for a movie.
func (s *Service) ListScreenings(ctx context.Context, movieID int64) ([]*domain.Screening, error) {
	if err := s.authorize(ctx, authz.ResourceScreening, authz.ActionReadAll); err != nil {
		return nil, err
	}
	movies, err := s.gw.Movies.GetWithIncludes(ctx, ports.IncludeScreenings)
	if err != nil {
		return nil, mapError(err)
	}
	var movie *domain.Movie
	for _, m := range movies {
		if m.ID == movieID {
			movie = m
			break
		}
	}
	if movie == nil {
		return nil, Fail(KindNotFound, "Movie with id %d not found.", movieID)
	}
	if len(movie.Screenings) == 0 {
		return nil, Fail(KindNotFound, "No screenings found for movie with id %d.", movieID)
	}
	screenings := make([]*domain.Screening, 0, len(movie.Screenings))
	for i := range movie.Screenings {
		screenings = append(screenings, &movie.Screenings[i])
	}
	return screenings, nil
}

// GetScreening returns a screening only when it belongs to the given movie.
func (s *Service) GetScreening(ctx context.Context, movieID, screeningID int64) (*domain.Screening, error) {
	if err := s.authorize(ctx, authz.ResourceScreening, authz.ActionReadOne); err != nil {
		return nil, err
	}
	screening, err := s.gw.Screenings.GetByID(ctx, screeningID)
	if err != nil {
		return nil, notFoundOr(err, "Screening with id %d not found for movie with id %d.", screeningID, movieID)
	}
	if !screening.BelongsTo(movieID) {
		return nil, Fail(KindNotFound, "Screening with id %d not found for movie with id %d.", screeningID, movieID)
	}
	return screening, nil
}

// CreateScreening schedules a screening under an existing movie.
func (s *Service) CreateScreening(ctx context.Context, movieID int64, input types.ScreeningInput) (*domain.Screening, error) {
	if err := s.authorize(ctx, authz.ResourceScreening, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.check(input, screeningMessages); err != nil {
		return nil, err
	}
	if _, err := s.gw.Movies.GetByID(ctx, movieID); err != nil {
		return nil, notFoundOr(err, "Movie with id %d not found.", movieID)
	}
	screening := &domain.Screening{
		MovieID:      movieID,
		ScreenNumber: input.ScreenNumber,
		Capacity:     input.Capacity,
		StartsAt:     input.StartsAt.UTC(),
	}
	if err := screening.Validate(); err != nil {
		return nil, invalid(err)
	}
	screening.Stamp(s.now())
	saved, err := s.gw.Screenings.Add(ctx, screening)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}
