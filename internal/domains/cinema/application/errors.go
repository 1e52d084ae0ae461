package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// Kind classifies a failure for the boundary layer.
type Kind string

const (
	KindNotFound       Kind = "NotFound"
	KindInvalidPayload Kind = "InvalidPayload"
	KindConflict       Kind = "Conflict"
	KindUnauthorized   Kind = "Unauthorized"
	KindForbidden      Kind = "Forbidden"
	KindStorage        Kind = "StorageError"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = authz.ErrUnauthenticated
	ErrForbidden      = authz.ErrForbidden
	ErrStorage        = ports.ErrStorage
)

var kindSentinels = map[Kind]error{
	KindNotFound:       ErrNotFound,
	KindInvalidPayload: ErrInvalidPayload,
	KindConflict:       ErrConflict,
	KindUnauthorized:   ErrUnauthorized,
	KindForbidden:      ErrForbidden,
	KindStorage:        ErrStorage,
}

// Failure is a typed, human readable outcome of a cinema operation.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

// Fail builds a Failure with a formatted message.
func Fail(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return f.Message
}

// Is matches the sentinel of the failure kind.
func (f *Failure) Is(target error) bool {
	sentinel, ok := kindSentinels[f.Kind]
	return ok && sentinel == target
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf extracts the failure kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}
	return "", false
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return err
	}
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return &Failure{Kind: KindUnauthorized, Message: "Authentication is required.", Err: err}
	case errors.Is(err, authz.ErrForbidden):
		return &Failure{Kind: KindForbidden, Message: "Access denied: " + err.Error() + ".", Err: err}
	case errors.Is(err, ports.ErrDuplicateKey):
		return &Failure{Kind: KindConflict, Message: "The record conflicts with an existing one.", Err: err}
	case errors.Is(err, ports.ErrMissingReference):
		return &Failure{Kind: KindNotFound, Message: "A referenced record does not exist.", Err: err}
	case errors.Is(err, ports.ErrStorage):
		return &Failure{Kind: KindStorage, Message: "Storage error: " + err.Error(), Err: err}
	}
	return err
}

// notFoundOr turns gateway absence into a NotFound failure and maps anything else.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, ports.ErrNotFound) {
		failure := Fail(KindNotFound, format, args...)
		failure.Err = err
		return failure
	}
	return mapError(err)
}

func invalid(err error) error {
	return &Failure{Kind: KindInvalidPayload, Message: err.Error(), Err: err}
}
