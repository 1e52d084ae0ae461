package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorMapper maps an error to a Problem.
type ErrorMapper func(err error) (Problem, bool)

// Responder writes envelopes and maps errors through a chain of mappers.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder creates a responder with the given error mappers.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// DefaultResponder has no custom mappers.
var DefaultResponder = NewResponder()

// AddMapper adds an error mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// OK sends a 200 success envelope.
func (r *Responder) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success(data))
}

// Created sends a 201 success envelope with a Location header.
func (r *Responder) Created(c *gin.Context, location string, data any) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, Success(data))
}

// Respond sends an error envelope for problem.
func (r *Responder) Respond(c *gin.Context, problem Problem) {
	c.JSON(problem.Status, Failure(problem.Message))
}

// BadRequest sends a 400 error envelope.
func (r *Responder) BadRequest(c *gin.Context, message string) {
	r.Respond(c, ErrBadRequest.WithMessage(message))
}

// RespondError tries each mapper before falling back to the error itself.
// Unmapped errors are reported as 500 without leaking their text.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

// Problem resolves the problem err maps to.
func (r *Responder) Problem(err error) Problem {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem Problem
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal
}

// HTTPStatusFromError extracts the HTTP status carried by err.
func HTTPStatusFromError(err error) int {
	var problem Problem
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
