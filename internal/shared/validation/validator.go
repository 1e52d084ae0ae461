// Package validation runs declarative field rules and collects every violation into one error.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Messages maps "Field.tag" to the human readable message reported when that rule fails.
type Messages map[string]string

func (m Messages) lookup(fe validator.FieldError) string {
	if msg, ok := m[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}

// Errors is the aggregated list of rule violations for one payload.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	engine *validator.Validate
}

type Option func(*validator.Validate) error

// WithPattern registers a tag that matches string fields against re.
func WithPattern(tag string, re *regexp.Regexp) Option {
	return func(v *validator.Validate) error {
		return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
}

// New builds a validator with the notblank rule plus any extra options.
func New(opts ...Option) (*Validator, error) {
	engine := validator.New()
	if err := engine.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(engine); err != nil {
			return nil, err
		}
	}
	return &Validator{engine: engine}, nil
}

// Validate checks payload against its `validate` tags. Violations come back as Errors in
// field order, one message per failing field.
func (v *Validator) Validate(payload any, messages Messages) error {
	err := v.engine.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, messages.lookup(fe))
	}
	return out
}
