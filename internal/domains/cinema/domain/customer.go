package domain

import (
	"errors"
	"regexp"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrCustomerEmailInvalid = errors.New("customer email is invalid")
	ErrCustomerPhoneInvalid = errors.New("customer phone is invalid")
)

// PhonePattern accepts an optional leading plus followed by 7 to 15 digits.
var PhonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// Customer books tickets. Deleting a customer removes the tickets they own.
type Customer struct {
	Base
	Name  string
	Email string
	Phone string

	// Tickets is only populated when explicitly included by a gateway query.
	Tickets []Ticket
}

// Validate checks the structural invariants of a customer.
func (c *Customer) Validate() error {
	if blank(c.Name) {
		return ErrCustomerNameRequired
	}
	if blank(c.Email) {
		return ErrCustomerEmailInvalid
	}
	if !PhonePattern.MatchString(c.Phone) {
		return ErrCustomerPhoneInvalid
	}
	return nil
}
