package application

import (
	"strings"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/shared/validation"
)

var customerCreateMessages = validation.Messages{
	"Name.notblank":  "Name is required.",
	"Email.required": "Email is required.",
	"Email.email":    "Email must be a valid email address.",
	"Phone.required": "Phone is required.",
	"Phone.phone":    "Phone must be a valid phone number.",
}

var customerPatchMessages = validation.Messages{
	"Name.notblank":  "Name cannot be empty or whitespace.",
	"Email.notblank": "Email cannot be empty.",
	"Email.email":    "Email must be valid.",
	"Phone.notblank": "Phone cannot be empty.",
	"Phone.phone":    "Phone must be valid.",
}

var movieCreateMessages = validation.Messages{
	"Title.notblank":       "Title is required.",
	"Rating.notblank":      "Rating is required.",
	"Description.notblank": "Description is required.",
	"Description.max":      "Description must be at most 500 characters.",
	"RuntimeMins.gt":       "Runtime must be greater than 0 minutes.",
}

var moviePatchMessages = validation.Messages{
	"Title.notblank":       "Title cannot be empty or whitespace.",
	"Rating.notblank":      "Rating cannot be empty or whitespace.",
	"Description.notblank": "Description cannot be empty.",
	"Description.max":      "Description must be at most 500 characters.",
	"RuntimeMins.gt":       "Runtime must be greater than 0 minutes.",
}

var screeningMessages = validation.Messages{
	"ScreenNumber.gt":   "Screen number must be greater than 0.",
	"Capacity.gt":       "Capacity must be greater than 0.",
	"StartsAt.required": "StartsAt is required.",
}

var ticketMessages = validation.Messages{
	"NumSeats.gt":  "Number of seats must be greater than zero.",
	"NumSeats.lte": "Cannot book more than 10 seats at once.",
}

func newRules() *validation.Validator {
	v, err := validation.New(validation.WithPattern("phone", domain.PhonePattern))
	if err != nil {
		panic(err)
	}
	return v
}

// check runs the rule set and wraps violations as an InvalidPayload failure.
func (s *Service) check(payload any, messages validation.Messages) error {
	if err := s.rules.Validate(payload, messages); err != nil {
		return invalid(err)
	}
	return nil
}

// mergeString overwrites dst only when the patch carries a non-blank value.
func mergeString(dst *string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	*dst = *value
}

func mergeInt(dst *int, value *int) {
	if value == nil {
		return
	}
	*dst = *value
}
