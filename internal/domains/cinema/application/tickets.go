package application

import (
	"context"

	"github.com/Apurer/cinema-booking-api/internal/authz"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
)

// BookTicket issues a ticket for an existing customer and screening.
//
// References are resolved first, then the payload is validated, then the ticket is
// written once. A repeated idempotency key returns the ticket it already produced.
// Seat counts are not checked against the screening capacity and concurrent bookings
// are not serialized.
func (s *Service) BookTicket(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	if err := s.authorize(ctx, authz.ResourceTicket, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.resolveBookingReferences(ctx, input.CustomerID, input.ScreeningID); err != nil {
		return nil, err
	}
	if err := s.check(input, ticketMessages); err != nil {
		return nil, err
	}
	if replayed, err := s.replayBooking(ctx, input); err != nil || replayed != nil {
		return replayed, err
	}
	ticket, err := domain.NewTicket(input.CustomerID, input.ScreeningID, input.NumSeats, s.now())
	if err != nil {
		return nil, invalid(err)
	}
	saved, err := s.gw.Tickets.Add(ctx, ticket)
	if err != nil {
		return nil, mapError(err)
	}
	s.rememberBooking(ctx, input, saved)
	if s.notifier != nil {
		s.notifier.TicketIssued(ctx, saved)
	}
	return saved, nil
}

// ListTickets returns the tickets a customer holds for one screening.
func (s *Service) ListTickets(ctx context.Context, customerID, screeningID int64) ([]*domain.Ticket, error) {
	if err := s.authorize(ctx, authz.ResourceTicket, authz.ActionReadOne); err != nil {
		return nil, err
	}
	if err := s.resolveBookingReferences(ctx, customerID, screeningID); err != nil {
		return nil, err
	}
	all, err := s.gw.Tickets.GetAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	tickets := make([]*domain.Ticket, 0)
	for _, t := range all {
		if t.CustomerID == customerID && t.ScreeningID == screeningID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (s *Service) resolveBookingReferences(ctx context.Context, customerID, screeningID int64) error {
	if _, err := s.gw.Customers.GetByID(ctx, customerID); err != nil {
		return notFoundOr(err, "The customer with ID %d does not exist.", customerID)
	}
	if _, err := s.gw.Screenings.GetByID(ctx, screeningID); err != nil {
		return notFoundOr(err, "The screening with ID %d does not exist.", screeningID)
	}
	return nil
}
