package application

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// GetMovie returns a single movie.
func (s *Service) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := s.authorize(ctx, authz.ResourceMovie, authz.ActionReadOne); err != nil {
		return nil, err
	}
	movie, err := s.gw.Movies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Movie with id %d not found.", id)
	}
	return movie, nil
}

// ListMovies returns every movie. An empty catalogue is reported as NotFound.
func (s *Service) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	if err := s.authorize(ctx, authz.ResourceMovie, authz.ActionReadAll); err != nil {
		return nil, err
	}
	movies, err := s.gw.Movies.GetAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if len(movies) == 0 {
		return nil, Fail(KindNotFound, "No movies found.")
	}
	return movies, nil
}

// CreateMovie validates and stores a new movie with a unique title.
func (s *Service) CreateMovie(ctx context.Context, input types.MovieInput) (*domain.Movie, error) {
	if err := s.authorize(ctx, authz.ResourceMovie, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.check(input, movieCreateMessages); err != nil {
		return nil, err
	}
	if err := s.ensureMovieTitleFree(ctx, input.Title, 0); err != nil {
		return nil, err
	}
	movie := &domain.Movie{
		Title:       input.Title,
		Rating:      input.Rating,
		Description: input.Description,
		RuntimeMins: input.RuntimeMins,
	}
	if err := movie.Validate(); err != nil {
		return nil, invalid(err)
	}
	movie.Stamp(s.now())
	saved, err := s.gw.Movies.Add(ctx, movie)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateMovie merges the present fields of patch onto an existing movie.
func (s *Service) UpdateMovie(ctx context.Context, id int64, patch types.MoviePatch) (*domain.Movie, error) {
	if err := s.authorize(ctx, authz.ResourceMovie, authz.ActionUpdate); err != nil {
		return nil, err
	}
	movie, err := s.gw.Movies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Movie with id %d not found.", id)
	}
	if err := s.check(patch, moviePatchMessages); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if err := s.ensureMovieTitleFree(ctx, *patch.Title, id); err != nil {
			return nil, err
		}
	}
	mergeString(&movie.Title, patch.Title)
	mergeString(&movie.Rating, patch.Rating)
	mergeString(&movie.Description, patch.Description)
	mergeInt(&movie.RuntimeMins, patch.RuntimeMins)
	if err := movie.Validate(); err != nil {
		return nil, invalid(err)
	}
	movie.Touch(s.now())
	updated, err := s.gw.Movies.Update(ctx, id, movie)
	if err != nil {
		return nil, notFoundOr(err, "Movie with id %d not found.", id)
	}
	return updated, nil
}

// DeleteMovie removes a movie, its screenings and their tickets.
func (s *Service) DeleteMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := s.authorize(ctx, authz.ResourceMovie, authz.ActionDelete); err != nil {
		return nil, err
	}
	removed, err := s.gw.Movies.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Movie with id %d not found.", id)
	}
	return removed, nil
}

func (s *Service) ensureMovieTitleFree(ctx context.Context, title string, selfID int64) error {
	movies, err := s.gw.Movies.GetAll(ctx)
	if err != nil {
		return mapError(err)
	}
	for _, m := range movies {
		if m.ID != selfID && m.Title == title {
			return Fail(KindConflict, "A movie with the title '%s' already exists.", title)
		}
	}
	return nil
}
