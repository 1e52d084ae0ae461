package application

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// GetCustomer returns a single customer.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	if err := s.authorize(ctx, authz.ResourceCustomer, authz.ActionReadOne); err != nil {
		return nil, err
	}
	customer, err := s.gw.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Customer with id %d not found.", id)
	}
	return customer, nil
}

// ListCustomers returns every customer. An empty store is reported as NotFound.
func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	if err := s.authorize(ctx, authz.ResourceCustomer, authz.ActionReadAll); err != nil {
		return nil, err
	}
	customers, err := s.gw.Customers.GetAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if len(customers) == 0 {
		return nil, Fail(KindNotFound, "No customers found.")
	}
	return customers, nil
}

// CreateCustomer validates and stores a new customer.
func (s *Service) CreateCustomer(ctx context.Context, input types.CustomerInput) (*domain.Customer, error) {
	if err := s.authorize(ctx, authz.ResourceCustomer, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.check(input, customerCreateMessages); err != nil {
		return nil, err
	}
	if err := s.ensureCustomerNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}
	customer := &domain.Customer{Name: input.Name, Email: input.Email, Phone: input.Phone}
	if err := customer.Validate(); err != nil {
		return nil, invalid(err)
	}
	customer.Stamp(s.now())
	saved, err := s.gw.Customers.Add(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateCustomer merges the present fields of patch onto an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error) {
	if err := s.authorize(ctx, authz.ResourceCustomer, authz.ActionUpdate); err != nil {
		return nil, err
	}
	customer, err := s.gw.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Customer with id %d not found.", id)
	}
	if err := s.check(patch, customerPatchMessages); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := s.ensureCustomerNameFree(ctx, *patch.Name, id); err != nil {
			return nil, err
		}
	}
	mergeString(&customer.Name, patch.Name)
	mergeString(&customer.Email, patch.Email)
	mergeString(&customer.Phone, patch.Phone)
	if err := customer.Validate(); err != nil {
		return nil, invalid(err)
	}
	customer.Touch(s.now())
	updated, err := s.gw.Customers.Update(ctx, id, customer)
	if err != nil {
		return nil, notFoundOr(err, "Customer with id %d not found.", id)
	}
	return updated, nil
}

// DeleteCustomer removes a customer together with their tickets.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	if err := s.authorize(ctx, authz.ResourceCustomer, authz.ActionDelete); err != nil {
		return nil, err
	}
	removed, err := s.gw.Customers.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Customer with id %d not found.", id)
	}
	return removed, nil
}

// ensureCustomerNameFree scans every other customer for an exact, case sensitive match.
func (s *Service) ensureCustomerNameFree(ctx context.Context, name string, selfID int64) error {
	customers, err := s.gw.Customers.GetAll(ctx)
	if err != nil {
		return mapError(err)
	}
	for _, c := range customers {
		if c.ID != selfID && c.Name == name {
			return Fail(KindConflict, "A customer with the name '%s' already exists.", name)
		}
	}
	return nil
}
