package cinemaserver

import (
	"fmt"

	"github.com/gin-gonic/gin"

	cinemahttp "github.com/Apurer/cinema-booking-api/internal/domains/cinema/adapters/http/mapper"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// MovieAPI wires HTTP transport with the movie and screening use cases.
type MovieAPI struct {
	service ports.Service
}

// NewMovieAPI creates a MovieAPI backed by the provided service.
func NewMovieAPI(service ports.Service) MovieAPI {
	return MovieAPI{service: service}
}

// Get /movies
// List the catalogue
func (api *MovieAPI) ListMovies(c *gin.Context) {
	movies, err := api.service.ListMovies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromMovies(movies))
}

// Post /movies
// Add a movie
func (api *MovieAPI) CreateMovie(c *gin.Context) {
	var payload cinemahttp.MovieRequest
	if !bindJSON(c, &payload) {
		return
	}
	movie, err := api.service.CreateMovie(c.Request.Context(), cinemahttp.ToMovieInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.Created(c, fmt.Sprintf("/movies/%d", movie.ID), cinemahttp.FromMovie(movie))
}

// Get /movies/:id
// Find movie by ID
func (api *MovieAPI) GetMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	movie, err := api.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromMovie(movie))
}

// Put /movies/:id
// Update the fields present in the body
func (api *MovieAPI) UpdateMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cinemahttp.MoviePatchRequest
	if !bindJSON(c, &payload) {
		return
	}
	movie, err := api.service.UpdateMovie(c.Request.Context(), id, cinemahttp.ToMoviePatch(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromMovie(movie))
}

// Delete /movies/:id
// Delete a movie with its screenings and tickets
func (api *MovieAPI) DeleteMovie(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	movie, err := api.service.DeleteMovie(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromMovie(movie))
}

// Get /movies/:id/screenings
// List the screenings of a movie
func (api *MovieAPI) ListScreenings(c *gin.Context) {
	movieID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	screenings, err := api.service.ListScreenings(c.Request.Context(), movieID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromScreenings(screenings))
}

// Post /movies/:id/screenings
// Schedule a screening
func (api *MovieAPI) CreateScreening(c *gin.Context) {
	movieID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cinemahttp.ScreeningRequest
	if !bindJSON(c, &payload) {
		return
	}
	screening, err := api.service.CreateScreening(c.Request.Context(), movieID, cinemahttp.ToScreeningInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	location := fmt.Sprintf("/movies/%d/screenings/%d", movieID, screening.ID)
	responder.Created(c, location, cinemahttp.FromScreening(screening))
}

// Get /movies/:id/screenings/:screeningId
// Find a screening of a movie
func (api *MovieAPI) GetScreening(c *gin.Context) {
	movieID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	screeningID, ok := parseIDParam(c, "screeningId")
	if !ok {
		return
	}
	screening, err := api.service.GetScreening(c.Request.Context(), movieID, screeningID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responder.OK(c, cinemahttp.FromScreening(screening))
}
